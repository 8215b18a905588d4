// ABOUTME: Tests for mood/activity synonym resolution, genre/tempo activity inference, and energy-level classification

package catalogmodel

import (
	"reflect"
	"testing"
)

func TestMapMoodResolvesSynonyms(t *testing.T) {
	got := MapMood([]string{"Chill", "hype", "unknown-tag"})
	want := []string{MoodCalm, MoodEnergetic, "unknown-tag"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMapMoodDedupesCanonicalCollisions(t *testing.T) {
	got := MapMood([]string{"chill", "mellow", "peaceful"})
	if len(got) != 1 || got[0] != MoodCalm {
		t.Errorf("expected synonyms collapsed to one calm entry, got %v", got)
	}
}

func TestMapMoodEmptyInput(t *testing.T) {
	if got := MapMood(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestMapActivityResolvesSynonyms(t *testing.T) {
	got := MapActivity([]string{"gym", "jog"})
	want := []string{ActivityWorkout, ActivityRunning}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInferActivityFastElectronic(t *testing.T) {
	got := InferActivity([]string{"electronic"}, TempoFast)
	want := []string{ActivityWorkout, ActivityParty}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInferActivityFastNonElectronic(t *testing.T) {
	got := InferActivity([]string{"rock"}, TempoFast)
	if !reflect.DeepEqual(got, []string{ActivityWorkout}) {
		t.Errorf("got %v", got)
	}
}

func TestInferActivitySlowJazz(t *testing.T) {
	got := InferActivity([]string{"jazz"}, TempoSlow)
	if !reflect.DeepEqual(got, []string{ActivityStudying}) {
		t.Errorf("got %v", got)
	}
}

func TestInferActivitySlowOther(t *testing.T) {
	got := InferActivity([]string{"rock"}, TempoSlow)
	if !reflect.DeepEqual(got, []string{ActivitySleep}) {
		t.Errorf("got %v", got)
	}
}

func TestInferActivityMediumTempoYieldsNothing(t *testing.T) {
	if got := InferActivity([]string{"rock"}, TempoMedium); got != nil {
		t.Errorf("expected no inferred activity for medium tempo, got %v", got)
	}
}

func TestEnergyLevelHighFromMood(t *testing.T) {
	if got := EnergyLevel([]string{MoodEnergetic}, nil); got != "high" {
		t.Errorf("got %q, want high", got)
	}
}

func TestEnergyLevelHighFromActivity(t *testing.T) {
	if got := EnergyLevel(nil, []string{ActivityParty}); got != "high" {
		t.Errorf("got %q, want high", got)
	}
}

func TestEnergyLevelLowFromMood(t *testing.T) {
	if got := EnergyLevel([]string{MoodCalm}, nil); got != "low" {
		t.Errorf("got %q, want low", got)
	}
}

func TestEnergyLevelDefaultsMedium(t *testing.T) {
	if got := EnergyLevel(nil, nil); got != "medium" {
		t.Errorf("got %q, want medium", got)
	}
}
