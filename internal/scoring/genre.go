// ABOUTME: Genre-match component scorer (spec §4.3)
// ABOUTME: Exact normalized match first, substring fallback, then the requiredGenres constraint penalty

package scoring

import (
	"fmt"
	"strings"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/reason"
)

func genreScore(meta catalogmodel.Metadata, requested []string, requiredGenres []string) (float64, reason.List) {
	if len(requested) == 0 {
		return 1.0, nil
	}

	normalizedRequested := catalogmodel.NormalizeGenres(requested)

	exactCount := 0
	for _, want := range normalizedRequested {
		if containsGenre(meta.NormalizedGenres, want) {
			exactCount++
		}
	}

	var score float64
	var reasons reason.List

	if exactCount > 0 {
		score = float64(exactCount) / float64(len(normalizedRequested))
		reasons = reasons.With(reason.Reason{
			Kind:        reason.KindGenreMatch,
			Explanation: fmt.Sprintf("Matches %d requested genre(s)", exactCount),
			Score:       score,
		})
	} else {
		partialCount := 0

		for _, want := range normalizedRequested {
			for _, have := range meta.NormalizedGenres {
				if strings.Contains(have, want) || strings.Contains(want, have) {
					partialCount++

					break
				}
			}
		}

		if partialCount > 0 {
			score = 0.7 * float64(partialCount) / float64(len(normalizedRequested))
			reasons = reasons.With(reason.Reason{
				Kind:        reason.KindGenreMatch,
				Explanation: "Partial genre match",
				Score:       score,
			})
		}
	}

	if len(requiredGenres) > 0 && !anyGenrePresent(meta.NormalizedGenres, requiredGenres) {
		score *= 0.3
		reasons = reasons.With(reason.Reason{
			Kind:        reason.KindConstraint,
			Explanation: "Missing a required genre",
			Score:       score,
		})
	}

	return score, reasons
}

func containsGenre(have []string, want string) bool {
	for _, h := range have {
		if h == want {
			return true
		}
	}

	return false
}

func anyGenrePresent(have, required []string) bool {
	for _, r := range required {
		if containsGenre(have, r) {
			return true
		}
	}

	return false
}
