// ABOUTME: Tests for the aggregate Score kernel: weighting, additive bonuses, and reason accumulation

package scoring

import (
	"testing"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/request"
	"playlistcraft/internal/strategy"
)

func baseContext() Context {
	return Context{
		Request:        &request.PlaylistRequest{Genres: []string{"electronic"}, Length: request.Length{Type: request.LengthTracks, Value: 10}},
		Strategy:       &strategy.PlaylistStrategy{ScoringWeights: strategy.DefaultWeights()},
		TargetDuration: 2000,
		RemainingSlots: 10,
	}
}

func TestScorePureFunction(t *testing.T) {
	bpm := 128.0
	dur := 200

	track := &catalogmodel.Track{TrackFileID: "t1", Artist: "A", Title: "Song", Genres: []string{"electronic"}, BPM: &bpm, DurationSeconds: &dur}
	meta := catalogmodel.Derive(track)

	ctx := baseContext()

	first := Score(track, meta, ctx)
	second := Score(track, meta, ctx)

	if first.Total != second.Total {
		t.Errorf("Score is not pure: %v vs %v", first.Total, second.Total)
	}
}

func TestScoreSuggestionBonusIsAdditive(t *testing.T) {
	bpm := 128.0
	dur := 200

	track := &catalogmodel.Track{TrackFileID: "t1", Artist: "Suggested Artist", Title: "Song", Genres: []string{"electronic"}, BPM: &bpm, DurationSeconds: &dur}
	meta := catalogmodel.Derive(track)

	ctx := baseContext()
	plain := Score(track, meta, ctx)

	ctx.Request.SuggestedArtists = []string{"Suggested Artist"}
	boosted := Score(track, meta, ctx)

	if boosted.Total <= plain.Total {
		t.Errorf("suggestion bonus did not raise total: plain=%v boosted=%v", plain.Total, boosted.Total)
	}

	if boosted.Components.Suggestion != 0.3 {
		t.Errorf("expected suggestion component 0.3, got %v", boosted.Components.Suggestion)
	}
}

func TestScoreInstructionOnlyAppliesWhenPresent(t *testing.T) {
	bpm := 128.0
	dur := 200

	track := &catalogmodel.Track{TrackFileID: "t1", Artist: "A", Title: "Midnight Run", Genres: []string{"electronic"}, BPM: &bpm, DurationSeconds: &dur}
	meta := catalogmodel.Derive(track)

	ctx := baseContext()

	without := Score(track, meta, ctx)
	if without.Components.Instruction != 0 {
		t.Errorf("no instruction hint should leave Instruction at 0, got %v", without.Components.Instruction)
	}

	ctx.Request.LLMAdditionalInstructions = "midnight"
	with := Score(track, meta, ctx)

	if with.Components.Instruction == 0 {
		t.Error("instruction hint matching the title should produce a nonzero component")
	}
}

func TestScoreAffinityBonusCapped(t *testing.T) {
	bpm := 128.0
	dur := 200

	track := &catalogmodel.Track{TrackFileID: "t1", Artist: "Affine Artist", Title: "Song", Genres: []string{"electronic"}, BPM: &bpm, DurationSeconds: &dur}
	meta := catalogmodel.Derive(track)

	ctx := baseContext()
	ctx.Affinity = AffinityContext{
		Artists: map[string]bool{"affine artist": true},
		Genres:  map[string]bool{"electronic": true},
	}

	result := Score(track, meta, ctx)
	if result.Components.Affinity > affinityBonusCap {
		t.Errorf("affinity bonus exceeded cap: %v > %v", result.Components.Affinity, affinityBonusCap)
	}
}
