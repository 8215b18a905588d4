// ABOUTME: Tests for candidate pool construction and affinity derivation

package selection

import (
	"testing"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/index"
	"playlistcraft/internal/request"
	"playlistcraft/internal/strategy"
)

func track(id, artist, album string, genres []string) *catalogmodel.Track {
	return &catalogmodel.Track{TrackFileID: id, Artist: artist, Album: album, Title: id, Genres: genres, LibraryRootID: "lib"}
}

func buildTestIndex() (*index.MatchingIndex, []*catalogmodel.Track) {
	tracks := []*catalogmodel.Track{
		track("t1", "Alpha", "A1", []string{"rock"}),
		track("t2", "Beta", "B1", []string{"jazz"}),
		track("t3", "Alpha", "A2", []string{"rock", "blues"}),
	}
	tracks[1].Enhanced.SimilarArtists = []string{"Gamma"}

	return index.Build(tracks), tracks
}

func TestBuildCandidatePoolGenreFilter(t *testing.T) {
	idx, _ := buildTestIndex()
	req := &request.PlaylistRequest{Genres: []string{"rock"}}
	strat := &strategy.PlaylistStrategy{}

	pool := BuildCandidatePool(req, strat, idx, AffinitySet{})
	if !pool["t1"] || !pool["t3"] {
		t.Errorf("expected t1 and t3 in pool, got %v", pool)
	}

	if pool["t2"] {
		t.Error("t2 (jazz) should not be in a rock-filtered pool")
	}
}

func TestBuildCandidatePoolEmptyGenresReturnsFullPool(t *testing.T) {
	idx, _ := buildTestIndex()
	req := &request.PlaylistRequest{}
	strat := &strategy.PlaylistStrategy{}

	pool := BuildCandidatePool(req, strat, idx, AffinitySet{})
	if len(pool) != 3 {
		t.Errorf("expected all 3 tracks with no genre filter, got %d", len(pool))
	}
}

func TestBuildCandidatePoolDisallowedArtistRemoval(t *testing.T) {
	idx, _ := buildTestIndex()
	req := &request.PlaylistRequest{DisallowedArtists: []string{"Alpha"}}
	strat := &strategy.PlaylistStrategy{}

	pool := BuildCandidatePool(req, strat, idx, AffinitySet{})
	if pool["t1"] || pool["t3"] {
		t.Error("disallowed artist tracks should be removed")
	}

	if !pool["t2"] {
		t.Error("t2 should survive disallowed-artist filtering")
	}
}

func TestBuildAffinitySetDerivesSimilarArtistsAndGenres(t *testing.T) {
	idx, tracks := buildTestIndex()
	req := &request.PlaylistRequest{SuggestedArtists: []string{"Beta"}}

	set := BuildAffinitySet(req, idx, tracks)

	if !set.Artists["beta"] {
		t.Error("expected suggested artist itself in the affinity set")
	}

	if !set.Artists["gamma"] {
		t.Error("expected similarArtists to be folded into the affinity set")
	}

	if !set.Genres["jazz"] {
		t.Error("expected the suggested artist's genre in the affinity set")
	}
}

func TestBuildAffinitySetEmptyWhenNoSuggestions(t *testing.T) {
	idx, tracks := buildTestIndex()
	req := &request.PlaylistRequest{}

	set := BuildAffinitySet(req, idx, tracks)
	if len(set.Artists) != 0 || len(set.Genres) != 0 {
		t.Error("expected an empty affinity set with no suggestions")
	}
}
