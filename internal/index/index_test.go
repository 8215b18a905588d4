// ABOUTME: Tests for MatchingIndex construction and set-algebra helpers

package index

import (
	"testing"

	"playlistcraft/internal/catalogmodel"
)

func bpm(v float64) *float64 { return &v }

func sampleTracks() []*catalogmodel.Track {
	return []*catalogmodel.Track{
		{TrackFileID: "t1", LibraryRootID: "lib", Artist: "Alice", Genres: []string{"Rock"}, BPM: bpm(150)},
		{TrackFileID: "t2", LibraryRootID: "lib", Artist: "Bob", Genres: []string{"Jazz"}, BPM: bpm(70)},
		{TrackFileID: "t3", LibraryRootID: "lib", Artist: "Alice", Genres: []string{"rock"}, BPM: bpm(110)},
	}
}

func TestBuildIndexesAllTracksAndGenres(t *testing.T) {
	idx := Build(sampleTracks())

	if idx.Len() != 3 {
		t.Fatalf("expected 3 tracks, got %d", idx.Len())
	}

	rockIDs := idx.ByGenre["rock"]
	if len(rockIDs) != 2 || !rockIDs["t1"] || !rockIDs["t3"] {
		t.Errorf("expected t1,t3 under rock, got %v", rockIDs)
	}

	if !idx.ByTempoBucket[catalogmodel.TempoFast]["t1"] {
		t.Error("expected t1 in fast tempo bucket")
	}
}

func TestUnionIntersectSubtract(t *testing.T) {
	a := map[string]bool{"x": true, "y": true}
	b := map[string]bool{"y": true, "z": true}

	inter := Intersect(a, b)
	if len(inter) != 1 || !inter["y"] {
		t.Errorf("Intersect = %v, want {y}", inter)
	}

	sub := Subtract(a, b)
	if len(sub) != 1 || !sub["x"] {
		t.Errorf("Subtract = %v, want {x}", sub)
	}

	buckets := map[string]map[string]bool{"g1": {"a": true}, "g2": {"b": true}}
	union := Union(buckets, []string{"g1", "g2", "missing"})

	if len(union) != 2 || !union["a"] || !union["b"] {
		t.Errorf("Union = %v, want {a,b}", union)
	}
}
