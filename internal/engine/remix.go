// ABOUTME: Remix rebuilds a request from a saved playlist's strategy+summary and regenerates, excluding its own tracks
// ABOUTME: Falls back to an unrestricted regeneration when excluding every existing track empties the candidate pool (spec §4.7)

package engine

import (
	"context"
	"errors"
	"sort"
	"time"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/request"
)

// Remix builds a fresh PlaylistRequest from prior's strategy and summary,
// then regenerates excluding every track already in prior. If excluding
// those tracks leaves no candidates, it regenerates without the exclusion.
func (e *Engine) Remix(ctx context.Context, prior *GeneratedPlaylist) (*GeneratedPlaylist, error) {
	req := remixRequest(prior)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exclude := make(map[string]bool, len(prior.TrackFileIDs))
	for _, id := range prior.TrackFileIDs {
		exclude[id] = true
	}

	tracks, err := e.Store.LoadTracks(ctx, e.LibraryRootID)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now()

	restricted := excludeTracks(tracks, exclude)

	playlist, err := e.generateFromTracks(ctx, req, restricted, createdAt)
	if errors.Is(err, ErrNoCandidates) || errors.Is(err, ErrNoTracksAvailable) {
		return e.generateFromTracks(ctx, req, tracks, createdAt)
	}

	return playlist, err
}

func excludeTracks(tracks []*catalogmodel.Track, exclude map[string]bool) []*catalogmodel.Track {
	out := make([]*catalogmodel.Track, 0, len(tracks))

	for _, t := range tracks {
		if !exclude[t.TrackFileID] {
			out = append(out, t)
		}
	}

	return out
}

// remixRequest derives a fresh request from a prior playlist's strategy and
// summary, per §4.7: genres from the primary/secondary genre mix (falling
// back to the top entries of the summary's genreMix), tempo from the
// strategy's guidance (falling back to the dominant tempo bucket), and
// length from the prior track count (falling back to total duration in
// minutes when the track count is zero).
func remixRequest(prior *GeneratedPlaylist) *request.PlaylistRequest {
	genres := dedupeAppend(prior.Strategy.GenreMix.PrimaryGenres, prior.Strategy.GenreMix.SecondaryGenres)
	if len(genres) == 0 {
		genres = topKeys(prior.Summary.GenreMix, 3)
	}

	tempo := request.Tempo{Bucket: prior.Strategy.TempoGuidance.TargetBucket}
	if tempo.Bucket == "" {
		tempo.Bucket = catalogmodel.TempoBucket(topKey(prior.Summary.TempoMix))
	}

	if prior.Strategy.TempoGuidance.BPMRange != nil {
		tempo.BPMRange = &request.BPMRange{Min: prior.Strategy.TempoGuidance.BPMRange.Min, Max: prior.Strategy.TempoGuidance.BPMRange.Max}
	}

	length := request.Length{Type: request.LengthTracks, Value: prior.Summary.TrackCount}
	if prior.Summary.TrackCount == 0 && prior.TotalDuration > 0 {
		length = request.Length{Type: request.LengthMinutes, Value: prior.TotalDuration / 60}
	}

	if length.Value <= 0 {
		length = request.Length{Type: request.LengthTracks, Value: 1}
	}

	return &request.PlaylistRequest{
		Genres:   genres,
		Mood:     prior.Strategy.VibeTags,
		Tempo:    tempo,
		Length:   length,
		Surprise: 0.3,
	}
}

func dedupeAppend(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))

	var out []string

	for _, s := range append(append([]string{}, a...), b...) {
		if s == "" || seen[s] {
			continue
		}

		seen[s] = true
		out = append(out, s)
	}

	return out
}

func topKeys(counts map[string]int, n int) []string {
	type kv struct {
		key   string
		count int
	}

	pairs := make([]kv, 0, len(counts))
	for k, v := range counts {
		pairs = append(pairs, kv{k, v})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}

		return pairs[i].key < pairs[j].key
	})

	if n > len(pairs) {
		n = len(pairs)
	}

	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pairs[i].key
	}

	return out
}

func topKey(counts map[string]int) string {
	keys := topKeys(counts, 1)
	if len(keys) == 0 {
		return ""
	}

	return keys[0]
}
