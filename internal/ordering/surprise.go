// ABOUTME: Surprise insertion: splices high-surprise candidates not already selected into the ordered sequence (spec §4.5)

package ordering

import (
	"math"
	"sort"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/index"
	"playlistcraft/internal/request"
	"playlistcraft/internal/scoring"
	"playlistcraft/internal/strategy"
)

const (
	surpriseInsertionThreshold = 0.3
	minOrderedLengthForSurprise = 5
)

var surpriseInsertPositions = []float64{0.25, 0.5, 0.75}

func insertSurprises(ordered []OrderedTrack, req *request.PlaylistRequest, strat *strategy.PlaylistStrategy, idx *index.MatchingIndex, candidatePool map[string]bool, affinity scoring.AffinityContext) []OrderedTrack {
	n := len(ordered)
	if req.Surprise < surpriseInsertionThreshold || n < minOrderedLengthForSurprise {
		return ordered
	}

	maxInsert := int(math.Floor(float64(n) * req.Surprise * 0.1))
	if maxInsert <= 0 {
		return ordered
	}

	used := make(map[string]bool, n)
	for _, o := range ordered {
		used[o.TrackFileID] = true
	}

	previous := make([]scoring.Previous, n)
	for i, o := range ordered {
		meta, _ := idx.Metadata(o.TrackFileID)
		previous[i] = scoring.Previous{TrackFileID: o.TrackFileID, Artist: o.Track.Artist, Album: o.Track.Album, NormalizedGenres: meta.NormalizedGenres}
	}

	type candidate struct {
		id       string
		track    *catalogmodel.Track
		result   scoring.Result
		surprise float64
	}

	var candidates []candidate

	for id := range candidatePool {
		if used[id] {
			continue
		}

		track := idx.Track(id)
		meta, _ := idx.Metadata(id)

		result := scoring.Score(track, meta, scoring.Context{
			Request:         req,
			Strategy:        strat,
			Previous:        previous,
			CurrentDuration: 0,
			TargetDuration:  1,
			RemainingSlots:  1,
			Affinity:        affinity,
		})

		if result.Components.Surprise > 0 {
			candidates = append(candidates, candidate{id: id, track: track, result: result, surprise: result.Components.Surprise})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].surprise > candidates[j].surprise })

	if len(candidates) > maxInsert {
		candidates = candidates[:maxInsert]
	}

	for i, c := range candidates {
		ratio := surpriseInsertPositions[i%len(surpriseInsertPositions)]
		insertAt := int(math.Round(ratio * float64(len(ordered))))

		if insertAt > len(ordered) {
			insertAt = len(ordered)
		}

		entry := OrderedTrack{
			TrackFileID: c.id,
			Track:       c.track,
			Reasons:     c.result.Reasons,
		}

		ordered = append(ordered[:insertAt], append([]OrderedTrack{entry}, ordered[insertAt:]...)...)
		used[c.id] = true
	}

	return ordered
}
