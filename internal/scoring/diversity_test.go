// ABOUTME: Tests for the diversity component scorer
// ABOUTME: Covers the hard max-per-artist penalty, the spacing penalty, and the album-variety bonus

package scoring

import (
	"testing"

	"playlistcraft/internal/strategy"
)

func TestDiversityScoreMaxArtistPenalty(t *testing.T) {
	rules := strategy.DiversityRules{MaxTracksPerArtist: 2, ArtistSpacing: 1}
	previous := []Previous{{Artist: "A"}, {Artist: "A"}}

	score, _ := diversityScore("A", "", nil, previous, rules)
	if score != 0.1 {
		t.Errorf("hitting max per artist: got %v, want 0.1", score)
	}
}

func TestDiversityScoreSpacingPenalty(t *testing.T) {
	rules := strategy.DiversityRules{MaxTracksPerArtist: 5, ArtistSpacing: 2}
	previous := []Previous{{Artist: "B"}, {Artist: "A"}}

	score, _ := diversityScore("A", "", nil, previous, rules)
	if score != 0.3 {
		t.Errorf("same artist within spacing: got %v, want 0.3", score)
	}
}

func TestDiversityScoreFreshArtistGetsFullScore(t *testing.T) {
	rules := strategy.DiversityRules{MaxTracksPerArtist: 3, ArtistSpacing: 5}
	previous := []Previous{{Artist: "B", Album: "Other"}}

	score, _ := diversityScore("A", "New Album", nil, previous, rules)
	if score <= 1.0 {
		t.Errorf("fresh artist with a different album should get the album bonus: got %v", score)
	}
}
