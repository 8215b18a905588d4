// ABOUTME: Tests for pairwise transition scoring and greedy section ordering

package ordering

import (
	"testing"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/index"
	"playlistcraft/internal/selection"
)

func sel(id, artist, album string, genres []string, bpm *float64) selection.TrackSelection {
	tr := &catalogmodel.Track{TrackFileID: id, Artist: artist, Album: album, Title: id, Genres: genres, BPM: bpm}

	return selection.TrackSelection{TrackFileID: id, Track: tr}
}

func bpmPtr(v float64) *float64 { return &v }

func TestTransitionScoreSameArtistPenalty(t *testing.T) {
	a := sel("a", "Same", "", []string{"rock"}, nil)
	b := sel("b", "Same", "", []string{"rock"}, nil)

	idx := index.Build([]*catalogmodel.Track{a.Track, b.Track})

	score := TransitionScore(&a, &b, idx)

	other := sel("c", "Different", "", []string{"rock"}, nil)
	idx2 := index.Build([]*catalogmodel.Track{a.Track, other.Track})
	scoreDifferent := TransitionScore(&a, &other, idx2)

	if score >= scoreDifferent {
		t.Errorf("same-artist transition (%v) should score lower than different-artist (%v)", score, scoreDifferent)
	}
}

func TestTransitionScoreTempoAdjacencyBoost(t *testing.T) {
	slow := sel("a", "A", "", nil, bpmPtr(80))
	medium := sel("b", "B", "", nil, bpmPtr(110))
	fast := sel("c", "C", "", nil, bpmPtr(160))

	idx := index.Build([]*catalogmodel.Track{slow.Track, medium.Track, fast.Track})

	adjacent := TransitionScore(&slow, &medium, idx)
	farApart := TransitionScore(&slow, &fast, idx)

	if adjacent <= farApart {
		t.Errorf("adjacent-tempo transition (%v) should score higher than slow->fast (%v)", adjacent, farApart)
	}
}

func TestGreedyOrderSectionPrefersBestTransition(t *testing.T) {
	anchor := sel("anchor", "Anchor", "", []string{"rock"}, bpmPtr(100))
	near := sel("near", "Near", "", []string{"rock"}, bpmPtr(105))
	far := sel("far", "Far", "", []string{"jazz"}, bpmPtr(170))

	idx := index.Build([]*catalogmodel.Track{anchor.Track, near.Track, far.Track})

	ordered := greedyOrderSection([]selection.TrackSelection{far, near}, &anchor, idx)
	if len(ordered) != 2 {
		t.Fatalf("expected 2 ordered entries, got %d", len(ordered))
	}

	if ordered[0].sel.TrackFileID != "near" {
		t.Errorf("expected the closer-transition track first, got %q", ordered[0].sel.TrackFileID)
	}
}

func TestGreedyOrderSectionFirstSectionHasNoAnchor(t *testing.T) {
	a := sel("a", "A", "", nil, nil)
	b := sel("b", "B", "", nil, nil)

	idx := index.Build([]*catalogmodel.Track{a.Track, b.Track})

	ordered := greedyOrderSection([]selection.TrackSelection{a, b}, nil, idx)
	if len(ordered) != 2 {
		t.Fatalf("expected 2 ordered entries, got %d", len(ordered))
	}

	if ordered[0].transitionScore != 1.0 {
		t.Errorf("first pick with no anchor should score 1.0, got %v", ordered[0].transitionScore)
	}
}
