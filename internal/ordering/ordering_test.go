// ABOUTME: Tests for the Order entry point: section partitioning, track-set preservation, positional output

package ordering

import (
	"testing"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/index"
	"playlistcraft/internal/request"
	"playlistcraft/internal/scoring"
	"playlistcraft/internal/selection"
	"playlistcraft/internal/strategy"
)

func buildSelections(n int) ([]selection.TrackSelection, []*catalogmodel.Track) {
	tracks := make([]*catalogmodel.Track, 0, n)
	selections := make([]selection.TrackSelection, 0, n)

	for i := 0; i < n; i++ {
		bpm := 100.0 + float64(i)*5
		tr := &catalogmodel.Track{TrackFileID: string(rune('a' + i)), Artist: string(rune('A' + i)), Title: "t", Genres: []string{"jazz"}, BPM: &bpm}
		tracks = append(tracks, tr)
		selections = append(selections, selection.TrackSelection{TrackFileID: tr.TrackFileID, Track: tr, TotalScore: float64(n - i)})
	}

	return selections, tracks
}

func TestOrderEmptyInput(t *testing.T) {
	idx := index.Build(nil)
	req := &request.PlaylistRequest{}
	strat := &strategy.PlaylistStrategy{}

	out := Order(nil, strat, idx, req, nil, scoring.AffinityContext{})
	if out != nil {
		t.Errorf("expected nil output for empty input, got %v", out)
	}
}

func TestOrderPreservesTrackSet(t *testing.T) {
	selections, tracks := buildSelections(8)
	idx := index.Build(tracks)
	req := &request.PlaylistRequest{}
	strat := &strategy.PlaylistStrategy{}

	out := Order(selections, strat, idx, req, map[string]bool{}, scoring.AffinityContext{})
	if len(out) != len(selections) {
		t.Fatalf("got %d ordered tracks, want %d", len(out), len(selections))
	}

	want := make(map[string]bool, len(selections))
	for _, s := range selections {
		want[s.TrackFileID] = true
	}

	for _, o := range out {
		if !want[o.TrackFileID] {
			t.Errorf("ordered output contains a track not in the selection: %q", o.TrackFileID)
		}

		delete(want, o.TrackFileID)
	}

	if len(want) != 0 {
		t.Errorf("ordered output is missing tracks: %v", want)
	}
}

func TestOrderAssignsSequentialPositions(t *testing.T) {
	selections, tracks := buildSelections(5)
	idx := index.Build(tracks)
	req := &request.PlaylistRequest{}
	strat := &strategy.PlaylistStrategy{}

	out := Order(selections, strat, idx, req, map[string]bool{}, scoring.AffinityContext{})
	for i, o := range out {
		if o.Position != i {
			t.Errorf("position %d: got %d", i, o.Position)
		}
	}
}

func TestOrderTransitionScoresMatchFinalAdjacency(t *testing.T) {
	selections, tracks := buildSelections(12)

	extraBPM := 130.0
	extra := &catalogmodel.Track{TrackFileID: "extra", Artist: "Stranger", Title: "Wild Card", Genres: []string{"jazz"}, BPM: &extraBPM}

	allTracks := append(append([]*catalogmodel.Track{}, tracks...), extra)
	idx := index.Build(allTracks)

	pool := map[string]bool{"extra": true}
	for _, s := range selections {
		pool[s.TrackFileID] = true
	}

	req := &request.PlaylistRequest{Surprise: 0.9, Genres: []string{"rock"}}
	strat := &strategy.PlaylistStrategy{ScoringWeights: strategy.DefaultWeights()}

	out := Order(selections, strat, idx, req, pool, scoring.AffinityContext{})

	if out[0].TransitionScore != 1.0 {
		t.Errorf("first entry TransitionScore = %v, want 1.0", out[0].TransitionScore)
	}

	for i := 1; i < len(out); i++ {
		fromSel := toSelectionLike(out[i-1])
		toSel := toSelectionLike(out[i])
		want := TransitionScore(&fromSel, &toSel, idx)

		if out[i].TransitionScore != want {
			t.Errorf("entry %d (%s after %s): TransitionScore = %v, want %v computed against its actual predecessor",
				i, out[i].TrackFileID, out[i-1].TrackFileID, out[i].TransitionScore, want)
		}
	}
}

func TestOrderWithSectionPlanFillsEachSection(t *testing.T) {
	selections, tracks := buildSelections(10)
	idx := index.Build(tracks)
	req := &request.PlaylistRequest{}
	strat := &strategy.PlaylistStrategy{
		OrderingPlan: strategy.OrderingPlan{Sections: []strategy.Section{
			{Name: strategy.SectionWarmup, StartPosition: 0, EndPosition: 0.3},
			{Name: strategy.SectionPeak, StartPosition: 0.3, EndPosition: 0.7},
			{Name: strategy.SectionCooldown, StartPosition: 0.7, EndPosition: 1.0},
		}},
	}

	out := Order(selections, strat, idx, req, map[string]bool{}, scoring.AffinityContext{})
	if len(out) != 10 {
		t.Fatalf("got %d ordered tracks, want 10", len(out))
	}

	counts := make(map[strategy.SectionName]int)
	for _, o := range out {
		counts[o.Section]++
	}

	for _, name := range []strategy.SectionName{strategy.SectionWarmup, strategy.SectionPeak, strategy.SectionCooldown} {
		if counts[name] == 0 {
			t.Errorf("section %q got no tracks: %v", name, counts)
		}
	}
}
