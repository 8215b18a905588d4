// ABOUTME: Summarize builds the LibrarySummary an oracle prompt and the heuristic fallback both consume
// ABOUTME: It is a single linear pass over the catalog snapshot, independent of any one request

package strategy

import "playlistcraft/internal/catalogmodel"

// Summarize derives a LibrarySummary from a catalog snapshot.
func Summarize(tracks []*catalogmodel.Track) LibrarySummary {
	s := LibrarySummary{
		GenreCounts:  make(map[string]int),
		ArtistCounts: make(map[string]int),
	}

	if len(tracks) == 0 {
		return s
	}

	s.TotalTracks = len(tracks)

	var totalDuration float64

	minDuration := float64(tracks[0].DurationOrDefault())
	maxDuration := minDuration

	for _, t := range tracks {
		meta := catalogmodel.Derive(t)

		for _, g := range meta.NormalizedGenres {
			s.GenreCounts[g]++
		}

		s.ArtistCounts[t.Artist]++

		switch meta.TempoBucket {
		case catalogmodel.TempoSlow:
			s.TempoDistribution.Slow++
		case catalogmodel.TempoMedium:
			s.TempoDistribution.Medium++
		case catalogmodel.TempoFast:
			s.TempoDistribution.Fast++
		}

		d := float64(t.DurationOrDefault())
		totalDuration += d

		if d < minDuration {
			minDuration = d
		}

		if d > maxDuration {
			maxDuration = d
		}
	}

	s.DurationStats = DurationStats{
		Avg: totalDuration / float64(len(tracks)),
		Min: minDuration,
		Max: maxDuration,
	}

	return s
}
