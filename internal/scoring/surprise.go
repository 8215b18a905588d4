// ABOUTME: Surprise component scorer (spec §4.3)
// ABOUTME: Rewards tracks reachable via a shared artist or shared genre with the requested/selected set, scaled by the surprise dial

package scoring

import "playlistcraft/internal/reason"

func surpriseScore(surprise float64, artist string, trackGenres []string, requestedGenres []string, artistsInRequestedGenres map[string]bool, previous []Previous) (float64, reason.List) {
	if surprise < 0.1 {
		return 0, nil
	}

	hasRequestedGenre := false

	for _, g := range trackGenres {
		if containsGenre(requestedGenres, g) {
			hasRequestedGenre = true

			break
		}
	}

	if !hasRequestedGenre && artistsInRequestedGenres[artist] {
		score := surprise * 0.5

		return score, reason.List{}.With(reason.Reason{
			Kind:        reason.KindSurprise,
			Explanation: "Shares an artist with your requested genres",
			Score:       score,
		})
	}

	for _, p := range previous {
		for _, g := range trackGenres {
			if containsGenre(p.NormalizedGenres, g) {
				score := surprise * 0.3

				return score, reason.List{}.With(reason.Reason{
					Kind:        reason.KindSurprise,
					Explanation: "Shares a genre with an earlier pick",
					Score:       score,
				})
			}
		}
	}

	return 0, nil
}
