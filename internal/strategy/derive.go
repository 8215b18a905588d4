// ABOUTME: Deterministic heuristic strategy derivation (spec §4.2's fallback path)
// ABOUTME: Used directly when no oracle is configured, and whenever the oracle path fails

package strategy

import (
	"fmt"
	"math"
	"strings"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/request"
)

// DefaultWeights are the spec's default scoring weights.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		GenreMatch:    0.3,
		TempoMatch:    0.25,
		MoodMatch:     0.2,
		ActivityMatch: 0.15,
		Diversity:     0.1,
	}
}

// TargetTracks computes the internal track-count target for a request given
// the library's average track duration.
func TargetTracks(req *request.PlaylistRequest, avgDurationSeconds float64) int {
	if req.Length.Type == request.LengthTracks {
		return req.Length.Value
	}

	if avgDurationSeconds <= 0 {
		avgDurationSeconds = catalogmodel.DefaultDurationSeconds
	}

	return int(math.Ceil(float64(req.Length.Value) * 60 / avgDurationSeconds))
}

// DeriveHeuristic builds a PlaylistStrategy deterministically from the
// request and library summary, per spec §4.2.
func DeriveHeuristic(req *request.PlaylistRequest, summary LibrarySummary) PlaylistStrategy {
	avgDuration := summary.DurationStats.Avg
	targetTracks := TargetTracks(req, avgDuration)

	s := PlaylistStrategy{
		ScoringWeights: DefaultWeights(),
		OrderingPlan:   deriveOrderingPlan(targetTracks, req.Mood),
		DiversityRules: deriveDiversityRules(req, targetTracks),
		TempoGuidance:  deriveTempoGuidance(req),
		GenreMix:       deriveGenreMix(req),
	}

	s.Title, s.Description = deriveTitleDescription(req)
	s.VibeTags = append(append([]string{}, req.Mood...), req.Activity...)

	return s
}

func deriveOrderingPlan(targetTracks int, mood []string) OrderingPlan {
	if targetTracks < 10 {
		return OrderingPlan{Sections: []Section{
			{Name: SectionPeak, StartPosition: 0, EndPosition: 1.0, EnergyLevel: energyFromMood(mood)},
		}}
	}

	energy := energyFromMood(mood)

	return OrderingPlan{Sections: []Section{
		{Name: SectionWarmup, StartPosition: 0, EndPosition: 0.2, EnergyLevel: "low"},
		{Name: SectionPeak, StartPosition: 0.2, EndPosition: 0.8, EnergyLevel: energy},
		{Name: SectionCooldown, StartPosition: 0.8, EndPosition: 1.0, EnergyLevel: "low"},
	}}
}

func energyFromMood(mood []string) string {
	mapped := catalogmodel.MapMood(mood)

	return catalogmodel.EnergyLevel(mapped, nil)
}

func deriveDiversityRules(req *request.PlaylistRequest, targetTracks int) DiversityRules {
	multiplier := 0.5 + req.Surprise*0.5

	maxPerArtist := roundHalfUp(3 * multiplier)
	if maxPerArtist < 1 {
		maxPerArtist = 1
	}

	spacing := roundHalfUp(5 * multiplier)
	if spacing < 1 {
		spacing = 1
	}

	if req.MinArtists != nil && *req.MinArtists > 0 {
		if cap := targetTracks / *req.MinArtists; cap < maxPerArtist {
			if cap < 1 {
				cap = 1
			}

			maxPerArtist = cap
		}
	}

	return DiversityRules{
		MaxTracksPerArtist: maxPerArtist,
		ArtistSpacing:      spacing,
	}
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func deriveTempoGuidance(req *request.PlaylistRequest) TempoGuidance {
	g := TempoGuidance{AllowVariation: true}

	if req.Tempo.Bucket != "" {
		g.TargetBucket = req.Tempo.Bucket
	}

	if req.Tempo.BPMRange != nil {
		g.BPMRange = &struct{ Min, Max float64 }{Min: req.Tempo.BPMRange.Min, Max: req.Tempo.BPMRange.Max}
	}

	return g
}

func deriveGenreMix(req *request.PlaylistRequest) GenreMixGuidance {
	normalized := catalogmodel.NormalizeGenres(req.Genres)

	return GenreMixGuidance{PrimaryGenres: normalized}
}

func deriveTitleDescription(req *request.PlaylistRequest) (string, string) {
	parts := make([]string, 0, 4)
	parts = append(parts, req.Mood...)
	parts = append(parts, req.Genres...)
	parts = append(parts, req.Activity...)

	if len(parts) == 0 {
		return "Playlist", "A generated playlist"
	}

	title := strings.Join(parts, " ")
	description := fmt.Sprintf("Generated from: %s", strings.Join(parts, ", "))

	return title, description
}
