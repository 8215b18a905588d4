// ABOUTME: PlaylistSummary generation: duration stats and count distributions (spec §3, §4.4)
// ABOUTME: All maps are always non-nil, even when empty, so they serialize as plain key-value maps at the boundary

package selection

import "playlistcraft/internal/index"

// Summary is the count-distribution and duration view of a generated
// playlist, serializable as plain string->int maps per spec §9's guidance
// on choosing one in-memory representation over source's dual storage.
type Summary struct {
	TotalDuration int
	TrackCount    int
	GenreMix      map[string]int
	TempoMix      map[string]int
	ArtistMix     map[string]int
	AvgDuration   float64
	MinDuration   int
	MaxDuration   int
}

// ComputeSummary derives a Summary from the final selections.
func ComputeSummary(selections []TrackSelection, idx *index.MatchingIndex) Summary {
	s := Summary{
		GenreMix:  make(map[string]int),
		TempoMix:  make(map[string]int),
		ArtistMix: make(map[string]int),
	}

	if len(selections) == 0 {
		return s
	}

	s.TrackCount = len(selections)
	s.MinDuration = selections[0].Track.DurationOrDefault()

	for _, sel := range selections {
		d := sel.Track.DurationOrDefault()
		s.TotalDuration += d

		if d < s.MinDuration {
			s.MinDuration = d
		}

		if d > s.MaxDuration {
			s.MaxDuration = d
		}

		s.ArtistMix[sel.Track.Artist]++

		meta, ok := idx.Metadata(sel.TrackFileID)
		if !ok {
			continue
		}

		for _, g := range meta.NormalizedGenres {
			s.GenreMix[g]++
		}

		s.TempoMix[string(meta.TempoBucket)]++
	}

	s.AvgDuration = float64(s.TotalDuration) / float64(s.TrackCount)

	return s
}
