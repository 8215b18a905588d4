// ABOUTME: Oracle path for strategy derivation: prompt, parse, convert, or fall back to the heuristic
// ABOUTME: Any transport/timeout/schema failure is recovered locally; the oracle never drives control flow

package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/oracle"
	"playlistcraft/internal/request"
)

// Derive produces a PlaylistStrategy. If refiner is non-nil, it first tries
// the oracle path; on any failure it falls back to DeriveHeuristic and the
// failure is logged once, never surfaced to the caller (spec §7).
func Derive(ctx context.Context, req *request.PlaylistRequest, summary LibrarySummary, refiner oracle.Refiner) PlaylistStrategy {
	if refiner == nil {
		return DeriveHeuristic(req, summary)
	}

	if _, ok := refiner.(oracle.NoOp); ok {
		return DeriveHeuristic(req, summary)
	}

	s, err := deriveViaOracle(ctx, req, summary, refiner)
	if err != nil {
		log.Printf("strategy: oracle fallback to heuristic: %v", err)

		return DeriveHeuristic(req, summary)
	}

	return *s
}

func deriveViaOracle(ctx context.Context, req *request.PlaylistRequest, summary LibrarySummary, refiner oracle.Refiner) (*PlaylistStrategy, error) {
	prompt, err := buildStrategyPrompt(req, summary)
	if err != nil {
		return nil, fmt.Errorf("building strategy prompt: %w", err)
	}

	raw, err := refiner.RequestStrategy(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("oracle strategy request: %w", err)
	}

	schema, err := oracle.ParseStrategy(raw)
	if err != nil {
		return nil, fmt.Errorf("oracle strategy parse: %w", err)
	}

	return fromSchema(schema), nil
}

func buildStrategyPrompt(req *request.PlaylistRequest, summary LibrarySummary) (string, error) {
	payload := struct {
		Request *request.PlaylistRequest `json:"request"`
		Library  LibrarySummary          `json:"librarySummary"`
	}{Request: req, Library: summary}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func fromSchema(s *oracle.StrategySchema) *PlaylistStrategy {
	out := &PlaylistStrategy{
		Title:       s.Title,
		Description: s.Description,
		ScoringWeights: ScoringWeights{
			GenreMatch:    s.ScoringWeights.GenreMatch,
			TempoMatch:    s.ScoringWeights.TempoMatch,
			MoodMatch:     s.ScoringWeights.MoodMatch,
			ActivityMatch: s.ScoringWeights.ActivityMatch,
			Diversity:     s.ScoringWeights.Diversity,
		},
		Constraints: Constraints{
			MinTracks:      s.Constraints.MinTracks,
			MaxTracks:      s.Constraints.MaxTracks,
			MinDuration:    s.Constraints.MinDuration,
			MaxDuration:    s.Constraints.MaxDuration,
			RequiredGenres: catalogmodel.NormalizeGenres(s.Constraints.RequiredGenres),
			ExcludedGenres: catalogmodel.NormalizeGenres(s.Constraints.ExcludedGenres),
		},
		DiversityRules: DiversityRules{
			MaxTracksPerArtist: s.DiversityRules.MaxTracksPerArtist,
			ArtistSpacing:      s.DiversityRules.ArtistSpacing,
			GenreSpacing:       s.DiversityRules.GenreSpacing,
			MaxTracksPerGenre:  s.DiversityRules.MaxTracksPerGenre,
		},
		VibeTags: s.VibeTags,
		TempoGuidance: TempoGuidance{
			TargetBucket:   catalogmodel.TempoBucket(s.TempoGuidance.TargetBucket),
			AllowVariation: s.TempoGuidance.AllowVariation,
		},
		GenreMix: GenreMixGuidance{
			PrimaryGenres:   catalogmodel.NormalizeGenres(s.GenreMixGuidance.PrimaryGenres),
			SecondaryGenres: catalogmodel.NormalizeGenres(s.GenreMixGuidance.SecondaryGenres),
		},
	}

	for _, sec := range s.OrderingPlan.Sections {
		out.OrderingPlan.Sections = append(out.OrderingPlan.Sections, Section{
			Name:          SectionName(sec.Name),
			StartPosition: sec.StartPosition,
			EndPosition:   sec.EndPosition,
			TempoTarget:   catalogmodel.TempoBucket(sec.TempoTarget),
			EnergyLevel:   sec.EnergyLevel,
		})
	}

	if len(out.OrderingPlan.Sections) == 0 {
		out.OrderingPlan.Sections = []Section{{Name: SectionPeak, StartPosition: 0, EndPosition: 1}}
	}

	return out
}
