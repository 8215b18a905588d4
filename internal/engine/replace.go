// ABOUTME: Replace produces up to N replacement selections for tracks removed from a kept context, per spec §4.7
// ABOUTME: Uses the same scoring kernel as the main loop with previousTracks=context; no duration-budget loop, just top-N by score

package engine

import (
	"context"
	"sort"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/index"
	"playlistcraft/internal/request"
	"playlistcraft/internal/scoring"
	"playlistcraft/internal/selection"
	"playlistcraft/internal/strategy"
)

// Replace scores every candidate not already in kept and not in
// removedIDs, using kept as the previously-selected window for
// diversity/surprise, and returns the n highest-scoring reachable
// selections. It returns fewer than n only when the candidate pool runs
// out.
func (e *Engine) Replace(ctx context.Context, req *request.PlaylistRequest, strat *strategy.PlaylistStrategy, kept []selection.TrackSelection, removedIDs []string, n int) ([]selection.TrackSelection, error) {
	tracks, err := e.Store.LoadTracks(ctx, e.LibraryRootID)
	if err != nil {
		return nil, err
	}

	if len(tracks) == 0 {
		return nil, ErrNoTracksAvailable
	}

	idx := buildIndex(tracks)

	affinity := selection.BuildAffinitySet(req, idx, tracks)
	pool := selection.BuildCandidatePool(req, strat, idx, affinity)

	if len(pool) == 0 {
		return nil, ErrNoCandidates
	}

	excluded := make(map[string]bool, len(kept)+len(removedIDs))
	for _, c := range kept {
		excluded[c.TrackFileID] = true
	}

	for _, id := range removedIDs {
		excluded[id] = true
	}

	affinityCtx := scoring.AffinityContext{Artists: affinity.Artists, Genres: affinity.Genres}
	previous := contextToPrevious(kept)

	currentDuration := 0
	for _, c := range kept {
		currentDuration += c.Track.DurationOrDefault()
	}

	candidates := scoreReplacementCandidates(pool, excluded, idx, req, strat, previous, currentDuration, affinityCtx)

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].TotalScore > candidates[j].TotalScore })

	if n > len(candidates) {
		n = len(candidates)
	}

	return candidates[:n], nil
}

func scoreReplacementCandidates(pool map[string]bool, excluded map[string]bool, idx *index.MatchingIndex, req *request.PlaylistRequest, strat *strategy.PlaylistStrategy, previous []scoring.Previous, currentDuration int, affinityCtx scoring.AffinityContext) []selection.TrackSelection {
	ids := make([]string, 0, len(pool))

	for id := range pool {
		if !excluded[id] {
			ids = append(ids, id)
		}
	}

	sort.Strings(ids)

	out := make([]selection.TrackSelection, 0, len(ids))

	for _, id := range ids {
		track := idx.Track(id)
		meta, _ := idx.Metadata(id)

		result := scoring.Score(track, meta, scoring.Context{
			Request:         req,
			Strategy:        strat,
			Previous:        previous,
			CurrentDuration: currentDuration,
			TargetDuration:  currentDuration + track.DurationOrDefault(),
			RemainingSlots:  1,
			Affinity:        affinityCtx,
		})

		out = append(out, selection.TrackSelection{
			TrackFileID: id,
			Track:       track,
			TotalScore:  result.Total,
			Reasons:     result.Reasons,
			Components:  result.Components,
		})
	}

	return out
}

func contextToPrevious(kept []selection.TrackSelection) []scoring.Previous {
	out := make([]scoring.Previous, 0, len(kept))

	for _, c := range kept {
		meta := catalogmodel.Derive(c.Track)

		out = append(out, scoring.Previous{
			TrackFileID:      c.TrackFileID,
			Artist:           c.Track.Artist,
			Album:            c.Track.Album,
			NormalizedGenres: meta.NormalizedGenres,
		})
	}

	return out
}
