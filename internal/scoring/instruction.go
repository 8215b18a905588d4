// ABOUTME: Free-text instruction component scorer (spec §4.3)
// ABOUTME: Tokenizes the optional hint and measures how much of it is covered by the track's own fields

package scoring

import (
	"fmt"
	"strings"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/reason"
)

// tokenizeInstruction lowercases and splits on anything that isn't a
// letter/digit, dropping empty tokens.
func tokenizeInstruction(hint string) []string {
	return strings.FieldsFunc(strings.ToLower(hint), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// instructionScore tokenizes the free-text hint and scores it as the
// fraction of tokens found somewhere in the track's title/artist/album/
// genres. The caller applies the fixed 0.1 weight when a hint is present.
func instructionScore(hint string, track *catalogmodel.Track) (float64, reason.List) {
	tokens := tokenizeInstruction(hint)
	if len(tokens) == 0 {
		return 0, nil
	}

	haystack := strings.ToLower(strings.Join(append([]string{track.Title, track.Artist, track.Album}, track.Genres...), " "))

	matched := 0

	for _, tok := range tokens {
		if strings.Contains(haystack, tok) {
			matched++
		}
	}

	score := float64(matched) / float64(len(tokens))
	if score == 0 {
		return 0, nil
	}

	return score, reason.List{}.With(reason.Reason{
		Kind:        reason.KindInstruction,
		Explanation: fmt.Sprintf("Matches %d/%d instruction keyword(s)", matched, len(tokens)),
		Score:       score,
	})
}
