// ABOUTME: End-to-end tests for Generate/Remix/Replace against an in-memory fixture catalog
// ABOUTME: Table-driven, stdlib testing only, matching the teacher's test idiom

package engine

import (
	"context"
	"testing"
	"time"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/catalogstore"
	"playlistcraft/internal/request"
)

type fakeStore struct {
	tracks []*catalogmodel.Track
}

func (f *fakeStore) LoadTracks(ctx context.Context, libraryRootID string) ([]*catalogmodel.Track, error) {
	return f.tracks, nil
}

func (f *fakeStore) BulkUpdate(ctx context.Context, updates []catalogstore.Update) error {
	return nil
}

func fixtureTracks() []*catalogmodel.Track {
	mk := func(id, artist, title, album string, genres []string, bpm float64, dur int) *catalogmodel.Track {
		b := bpm
		d := dur

		return &catalogmodel.Track{
			TrackFileID:     id,
			LibraryRootID:   "default",
			Artist:          artist,
			Title:           title,
			Album:           album,
			Genres:          genres,
			BPM:             &b,
			DurationSeconds: &d,
			AddedAt:         time.Unix(0, 0),
			UpdatedAt:       time.Unix(0, 0),
		}
	}

	return []*catalogmodel.Track{
		mk("t1", "Artist A", "Song One", "Album A", []string{"electronic"}, 128, 200),
		mk("t2", "Artist B", "Song Two", "Album B", []string{"electronic"}, 130, 210),
		mk("t3", "Artist C", "Song Three", "Album C", []string{"rock"}, 90, 190),
		mk("t4", "Artist A", "Song Four", "Album D", []string{"electronic"}, 125, 220),
		mk("t5", "Artist D", "Song Five", "Album E", []string{"jazz"}, 80, 240),
		mk("t6", "Artist E", "Song Six", "Album F", []string{"electronic"}, 135, 200),
		mk("t7", "Artist F", "Song Seven", "Album G", []string{"hip hop"}, 95, 180),
		mk("t8", "Artist G", "Song Eight", "Album H", []string{"electronic"}, 120, 205),
	}
}

func TestGenerateDeterministic(t *testing.T) {
	store := &fakeStore{tracks: fixtureTracks()}
	eng := New(store, nil, nil, "default")

	req := &request.PlaylistRequest{
		Genres: []string{"electronic"},
		Length: request.Length{Type: request.LengthTracks, Value: 3},
		Seed:   seedPtr(42),
	}

	first, err := eng.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	second, err := eng.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate (second run): %v", err)
	}

	if len(first.TrackFileIDs) != len(second.TrackFileIDs) {
		t.Fatalf("track count differs: %d vs %d", len(first.TrackFileIDs), len(second.TrackFileIDs))
	}

	for i := range first.TrackFileIDs {
		if first.TrackFileIDs[i] != second.TrackFileIDs[i] {
			t.Errorf("position %d: %q vs %q", i, first.TrackFileIDs[i], second.TrackFileIDs[i])
		}
	}

	if first.ID == second.ID {
		t.Error("two separate generations should not share a playlist id")
	}
}

func TestGenerateInvalidRequest(t *testing.T) {
	eng := New(&fakeStore{tracks: fixtureTracks()}, nil, nil, "default")

	_, err := eng.Generate(context.Background(), &request.PlaylistRequest{Length: request.Length{Type: request.LengthTracks, Value: 0}})
	if err == nil {
		t.Fatal("expected ErrInvalidRequest for zero-length request")
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	eng := New(&fakeStore{tracks: nil}, nil, nil, "default")

	_, err := eng.Generate(context.Background(), &request.PlaylistRequest{Length: request.Length{Type: request.LengthTracks, Value: 5}})
	if err != ErrNoTracksAvailable {
		t.Fatalf("expected ErrNoTracksAvailable, got %v", err)
	}
}

func TestRemixExcludesPriorTracks(t *testing.T) {
	store := &fakeStore{tracks: fixtureTracks()}
	eng := New(store, nil, nil, "default")

	req := &request.PlaylistRequest{
		Genres: []string{"electronic"},
		Length: request.Length{Type: request.LengthTracks, Value: 3},
		Seed:   seedPtr(7),
	}

	prior, err := eng.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	remixed, err := eng.Remix(context.Background(), prior)
	if err != nil {
		t.Fatalf("Remix: %v", err)
	}

	priorSet := make(map[string]bool, len(prior.TrackFileIDs))
	for _, id := range prior.TrackFileIDs {
		priorSet[id] = true
	}

	overlap := false

	for _, id := range remixed.TrackFileIDs {
		if priorSet[id] {
			overlap = true
		}
	}

	if overlap && len(remixed.TrackFileIDs) < len(fixtureTracks()) {
		t.Error("remix should avoid prior tracks while the pool has alternatives")
	}
}

func TestReplaceReturnsUpToN(t *testing.T) {
	store := &fakeStore{tracks: fixtureTracks()}
	eng := New(store, nil, nil, "default")

	req := &request.PlaylistRequest{
		Genres: []string{"electronic"},
		Length: request.Length{Type: request.LengthTracks, Value: 3},
		Seed:   seedPtr(1),
	}

	generated, err := eng.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	kept := generated.TrackSelections[:1]
	removed := []string{generated.TrackSelections[1].TrackFileID}

	replacements, err := eng.Replace(context.Background(), req, &generated.Strategy, kept, removed, 2)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if len(replacements) > 2 {
		t.Fatalf("expected at most 2 replacements, got %d", len(replacements))
	}

	for _, r := range replacements {
		if r.TrackFileID == removed[0] {
			t.Error("replacement must not reuse a removed id")
		}

		if r.TrackFileID == kept[0].TrackFileID {
			t.Error("replacement must not reuse a kept id")
		}
	}
}

func seedPtr(v uint64) *uint64 {
	return &v
}
