// ABOUTME: Diversity component scorer (spec §4.3)
// ABOUTME: Penalizes repeated artists within the spacing window, rewards album variety; album bonus can exceed 1.0 by design

package scoring

import (
	"fmt"

	"playlistcraft/internal/reason"
	"playlistcraft/internal/strategy"
)

func diversityScore(artist, album string, genres []string, previous []Previous, rules strategy.DiversityRules) (float64, reason.List) {
	score := 1.0
	var reasons reason.List

	artistCount := 0
	for _, p := range previous {
		if p.Artist == artist {
			artistCount++
		}
	}

	maxPerArtist := rules.MaxTracksPerArtist
	if maxPerArtist <= 0 {
		maxPerArtist = 1
	}

	spacing := rules.ArtistSpacing
	if spacing <= 0 {
		spacing = 1
	}

	withinArtistSpacing := sameArtistWithinSpacing(artist, previous, spacing)

	switch {
	case artistCount >= maxPerArtist:
		score = 0.1
		reasons = reasons.With(reason.Reason{Kind: reason.KindDiversity, Explanation: fmt.Sprintf("Artist already appears %d time(s)", artistCount), Score: score})
	case withinArtistSpacing:
		score = 0.3
		reasons = reasons.With(reason.Reason{Kind: reason.KindDiversity, Explanation: "Same artist appeared too recently", Score: score})
	default:
		reasons = reasons.With(reason.Reason{Kind: reason.KindDiversity, Explanation: "Adds artist variety", Score: score})
	}

	if sharedRecentGenre(genres, previous, rules.GenreSpacing) {
		score *= 0.7
	}

	if album != "" && !sameAlbumRecent(album, previous) {
		score *= 1.1
	}

	return score, reasons
}

func sameArtistWithinSpacing(artist string, previous []Previous, spacing int) bool {
	n := len(previous)

	for i := n - 1; i >= 0 && n-i <= spacing; i-- {
		if previous[i].Artist == artist {
			return true
		}
	}

	return false
}

func sharedRecentGenre(genres []string, previous []Previous, spacing int) bool {
	if spacing <= 0 {
		spacing = 1
	}

	n := len(previous)

	for i := n - 1; i >= 0 && n-i <= spacing; i-- {
		for _, g := range genres {
			for _, pg := range previous[i].NormalizedGenres {
				if g == pg {
					return true
				}
			}
		}
	}

	return false
}

func sameAlbumRecent(album string, previous []Previous) bool {
	if len(previous) == 0 {
		return false
	}

	return previous[len(previous)-1].Album == album
}
