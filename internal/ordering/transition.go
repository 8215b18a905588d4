// ABOUTME: Transition scoring and greedy intra-section ordering (spec §4.5)
// ABOUTME: Starts from the previous section's last track; each step multiplies independent factors onto a base of 1.0

package ordering

import (
	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/index"
	"playlistcraft/internal/selection"
)

type orderedEntry struct {
	sel             selection.TrackSelection
	transitionScore float64
}

// greedyOrderSection repeatedly picks the remaining track with the highest
// transition score from the current tail, starting from prev (the last
// track of the previous section, or nil for the very first section).
func greedyOrderSection(tracks []selection.TrackSelection, prev *selection.TrackSelection, idx *index.MatchingIndex) []orderedEntry {
	remaining := make([]selection.TrackSelection, len(tracks))
	copy(remaining, tracks)

	out := make([]orderedEntry, 0, len(tracks))

	current := prev

	for len(remaining) > 0 {
		bestIdx := 0
		bestScore := -1.0

		for i, candidate := range remaining {
			var score float64
			if current == nil {
				score = 1.0
			} else {
				score = TransitionScore(current, &candidate, idx)
			}

			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		picked := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		out = append(out, orderedEntry{sel: picked, transitionScore: bestScore})

		current = &picked
	}

	return out
}

// TransitionScore computes the greedy ordering's per-step score between two
// tracks, per §4.5's multiplicative factor list.
func TransitionScore(from, to *selection.TrackSelection, idx *index.MatchingIndex) float64 {
	score := 1.0

	if from.Track.Artist == to.Track.Artist {
		score *= 0.2
	}

	if from.Track.Album != "" && from.Track.Album == to.Track.Album {
		score *= 0.5
	}

	fromMeta, _ := idx.Metadata(from.TrackFileID)
	toMeta, _ := idx.Metadata(to.TrackFileID)

	if genreOverlap(fromMeta.NormalizedGenres, toMeta.NormalizedGenres) {
		score *= 1.1
	} else {
		score *= 0.9
	}

	switch moodActivityRelation(fromMeta.MappedMood, toMeta.MappedMood) {
	case relationOverlap:
		score *= 1.05
	case relationMismatch:
		score *= 0.95
	}

	switch moodActivityRelation(fromMeta.MappedActivity, toMeta.MappedActivity) {
	case relationOverlap:
		score *= 1.05
	case relationMismatch:
		score *= 0.95
	}

	delta := catalogmodel.TempoDelta(fromMeta.TempoBucket, toMeta.TempoBucket)

	switch delta {
	case 0:
		score *= 1.0
	case 1:
		score *= 1.2
	case 2:
		score *= 0.8
	}

	if from.Track.Year != nil && to.Track.Year != nil {
		yearDelta := abs(*from.Track.Year - *to.Track.Year)

		switch {
		case yearDelta < 5:
			score *= 1.05
		case yearDelta > 20:
			score *= 0.95
		}
	}

	return score
}

type relation int

const (
	relationUnknown relation = iota
	relationOverlap
	relationMismatch
)

func moodActivityRelation(a, b []string) relation {
	if len(a) == 0 || len(b) == 0 {
		return relationUnknown
	}

	set := make(map[string]bool, len(a))
	for _, x := range a {
		set[x] = true
	}

	for _, y := range b {
		if set[y] {
			return relationOverlap
		}
	}

	return relationMismatch
}

func genreOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}

	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// toSelectionLike adapts an OrderedTrack into the minimal selection.TrackSelection
// shape TransitionScore needs, for use by recomputeTransitionScores, which
// operates after selections have already been turned into ordered entries.
func toSelectionLike(o OrderedTrack) selection.TrackSelection {
	return selection.TrackSelection{TrackFileID: o.TrackFileID, Track: o.Track}
}
