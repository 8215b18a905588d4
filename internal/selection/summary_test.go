// ABOUTME: Tests for ComputeSummary's duration stats and count distributions

package selection

import (
	"testing"

	"playlistcraft/internal/index"
)

func TestComputeSummaryEmptySelections(t *testing.T) {
	idx, _ := buildTestIndex()

	s := ComputeSummary(nil, idx)
	if s.TrackCount != 0 || s.GenreMix == nil || s.TempoMix == nil || s.ArtistMix == nil {
		t.Error("expected zero-valued, non-nil-map summary for an empty selection")
	}
}

func TestComputeSummaryAggregatesAcrossSelections(t *testing.T) {
	idx, tracks := buildTestIndex()

	dur1, dur2 := 100, 200
	tracks[0].DurationSeconds = &dur1
	tracks[1].DurationSeconds = &dur2
	idx = index.Build(tracks)

	selections := []TrackSelection{
		{TrackFileID: "t1", Track: tracks[0]},
		{TrackFileID: "t2", Track: tracks[1]},
	}

	s := ComputeSummary(selections, idx)

	if s.TrackCount != 2 {
		t.Errorf("got TrackCount %d, want 2", s.TrackCount)
	}

	if s.TotalDuration != 300 {
		t.Errorf("got TotalDuration %d, want 300", s.TotalDuration)
	}

	if s.MinDuration != 100 || s.MaxDuration != 200 {
		t.Errorf("got min/max %d/%d, want 100/200", s.MinDuration, s.MaxDuration)
	}

	if s.AvgDuration != 150 {
		t.Errorf("got AvgDuration %v, want 150", s.AvgDuration)
	}

	if s.ArtistMix["Alpha"] != 1 || s.ArtistMix["Beta"] != 1 {
		t.Errorf("unexpected artist mix: %v", s.ArtistMix)
	}
}
