// ABOUTME: Post-loop minArtists enforcement (spec §4.4)
// ABOUTME: Best-effort: when the pool itself has fewer distinct artists than requested, the result simply falls short (testable property's "when pool allows" clause)

package selection

import (
	"sort"

	"playlistcraft/internal/index"
	"playlistcraft/internal/request"
	"playlistcraft/internal/scoring"
	"playlistcraft/internal/strategy"
)

func enforceMinArtists(req *request.PlaylistRequest, strat *strategy.PlaylistStrategy, idx *index.MatchingIndex, pool map[string]bool, used map[string]bool, selected []TrackSelection, targetTracks, targetDuration, currentDuration int, affinityCtx scoring.AffinityContext) []TrackSelection {
	if req.MinArtists == nil || *req.MinArtists <= 0 {
		return selected
	}

	distinct := distinctArtists(selected)
	if len(distinct) >= *req.MinArtists {
		return selected
	}

	unusedByArtist := make(map[string][]string)
	for id := range pool {
		if used[id] {
			continue
		}

		t := idx.Track(id)
		if t == nil || distinct[t.Artist] {
			continue
		}

		unusedByArtist[t.Artist] = append(unusedByArtist[t.Artist], id)
	}

	artistsByCount := make([]string, 0, len(unusedByArtist))
	for a := range unusedByArtist {
		artistsByCount = append(artistsByCount, a)
	}

	sort.Slice(artistsByCount, func(i, j int) bool {
		ci, cj := len(unusedByArtist[artistsByCount[i]]), len(unusedByArtist[artistsByCount[j]])
		if ci != cj {
			return ci > cj
		}

		return artistsByCount[i] < artistsByCount[j]
	})

	for _, artist := range artistsByCount {
		if len(distinct) >= *req.MinArtists {
			break
		}

		best := bestScoring(unusedByArtist[artist], idx, req, strat, selected, currentDuration, targetDuration, targetTracks, affinityCtx)
		if best == nil {
			continue
		}

		hasRoom := req.Length.Type == request.LengthTracks && len(selected) < targetTracks ||
			req.Length.Type == request.LengthMinutes && currentDuration < targetDuration

		if hasRoom {
			selected = append(selected, *best)
			currentDuration += best.Track.DurationOrDefault()
		} else {
			lowestIdx := lowestScoredReplaceable(selected, distinct)
			if lowestIdx < 0 {
				continue
			}

			currentDuration -= selected[lowestIdx].Track.DurationOrDefault()
			selected[lowestIdx] = *best
			currentDuration += best.Track.DurationOrDefault()
		}

		used[best.TrackFileID] = true
		distinct[best.Track.Artist] = true
	}

	return selected
}

func distinctArtists(selected []TrackSelection) map[string]bool {
	out := make(map[string]bool, len(selected))
	for _, s := range selected {
		out[s.Track.Artist] = true
	}

	return out
}

func bestScoring(ids []string, idx *index.MatchingIndex, req *request.PlaylistRequest, strat *strategy.PlaylistStrategy, selected []TrackSelection, currentDuration, targetDuration, targetTracks int, affinityCtx scoring.AffinityContext) *TrackSelection {
	var best *TrackSelection

	previous := toPrevious(selected)

	for _, id := range ids {
		track := idx.Track(id)
		meta, _ := idx.Metadata(id)

		result := scoring.Score(track, meta, scoring.Context{
			Request:         req,
			Strategy:        strat,
			Previous:        previous,
			CurrentDuration: currentDuration,
			TargetDuration:  targetDuration,
			RemainingSlots:  remainingSlots(targetTracks, len(selected)),
			Affinity:        affinityCtx,
		})

		candidate := TrackSelection{TrackFileID: id, Track: track, TotalScore: result.Total, Reasons: result.Reasons, Components: result.Components}

		if best == nil || candidate.TotalScore > best.TotalScore {
			c := candidate
			best = &c
		}
	}

	return best
}

// lowestScoredReplaceable picks the lowest-scored selection whose artist has
// more than one current appearance, so replacing it cannot strand a
// single-appearance artist below zero. Falls back to the global lowest.
func lowestScoredReplaceable(selected []TrackSelection, distinct map[string]bool) int {
	counts := make(map[string]int, len(selected))
	for _, s := range selected {
		counts[s.Track.Artist]++
	}

	lowestIdx, lowestMultiIdx := -1, -1
	var lowestScore, lowestMultiScore float64

	for i, s := range selected {
		if lowestIdx < 0 || s.TotalScore < lowestScore {
			lowestIdx, lowestScore = i, s.TotalScore
		}

		if counts[s.Track.Artist] > 1 && (lowestMultiIdx < 0 || s.TotalScore < lowestMultiScore) {
			lowestMultiIdx, lowestMultiScore = i, s.TotalScore
		}
	}

	if lowestMultiIdx >= 0 {
		return lowestMultiIdx
	}

	return lowestIdx
}
