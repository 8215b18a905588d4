// ABOUTME: Tests for the end-to-end selection loop: determinism, pool exhaustion, and track-count targets

package selection

import (
	"context"
	"errors"
	"testing"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/index"
	"playlistcraft/internal/request"
	"playlistcraft/internal/strategy"
)

func manyTracks(n int) []*catalogmodel.Track {
	out := make([]*catalogmodel.Track, 0, n)

	for i := 0; i < n; i++ {
		dur := 180
		out = append(out, &catalogmodel.Track{
			TrackFileID:     idFor(i),
			LibraryRootID:   "lib",
			Title:           idFor(i),
			Artist:          artistFor(i),
			Genres:          []string{"rock"},
			DurationSeconds: &dur,
		})
	}

	return out
}

func idFor(i int) string     { return "t" + string(rune('a'+i)) }
func artistFor(i int) string { return "Artist" + string(rune('A'+i%4)) }

func testStrategy() *strategy.PlaylistStrategy {
	return &strategy.PlaylistStrategy{
		ScoringWeights: strategy.DefaultWeights(),
		DiversityRules: strategy.DiversityRules{MaxTracksPerArtist: 3, ArtistSpacing: 1},
	}
}

func TestSelectIsDeterministicForAGivenSeed(t *testing.T) {
	tracks := manyTracks(12)
	idx := index.Build(tracks)
	req := &request.PlaylistRequest{Genres: []string{"rock"}, Length: request.Length{Type: request.LengthTracks, Value: 5}}
	strat := testStrategy()

	seed := DeriveSeed(req)

	r1, err := Select(context.Background(), req, strat, idx, tracks, seed, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r2, err := Select(context.Background(), req, strat, idx, tracks, seed, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r1.Selections) != len(r2.Selections) {
		t.Fatalf("selection count differs across runs: %d vs %d", len(r1.Selections), len(r2.Selections))
	}

	for i := range r1.Selections {
		if r1.Selections[i].TrackFileID != r2.Selections[i].TrackFileID {
			t.Errorf("selection %d differs across runs: %q vs %q", i, r1.Selections[i].TrackFileID, r2.Selections[i].TrackFileID)
		}
	}
}

func TestSelectRespectsTrackCountTarget(t *testing.T) {
	tracks := manyTracks(20)
	idx := index.Build(tracks)
	req := &request.PlaylistRequest{Genres: []string{"rock"}, Length: request.Length{Type: request.LengthTracks, Value: 6}}
	strat := testStrategy()

	result, err := Select(context.Background(), req, strat, idx, tracks, DeriveSeed(req), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Selections) != 6 {
		t.Errorf("got %d selections, want 6", len(result.Selections))
	}
}

func TestSelectReturnsErrNoTracksAvailableWhenCatalogEmpty(t *testing.T) {
	idx := index.Build(nil)
	req := &request.PlaylistRequest{Length: request.Length{Type: request.LengthTracks, Value: 5}}
	strat := testStrategy()

	_, err := Select(context.Background(), req, strat, idx, nil, 1, nil)
	if !errors.Is(err, ErrNoTracksAvailable) {
		t.Errorf("got %v, want ErrNoTracksAvailable", err)
	}
}

func TestSelectReturnsErrNoCandidatesWhenTempoFilterEmptiesPool(t *testing.T) {
	tracks := manyTracks(5) // none carry a BPM, so they all bucket as TempoUnknown
	idx := index.Build(tracks)
	req := &request.PlaylistRequest{Length: request.Length{Type: request.LengthTracks, Value: 5}}
	strat := &strategy.PlaylistStrategy{
		ScoringWeights: strategy.DefaultWeights(),
		TempoGuidance:  strategy.TempoGuidance{TargetBucket: catalogmodel.TempoFast, AllowVariation: false},
	}

	_, err := Select(context.Background(), req, strat, idx, tracks, 1, nil)
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("got %v, want ErrNoCandidates", err)
	}
}
