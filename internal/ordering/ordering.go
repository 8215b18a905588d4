// ABOUTME: Flow-arc ordering agent: section assignment, greedy transition-scored intra-section ordering, surprise insertion (spec §4.5)
// ABOUTME: Operates purely on an already-selected TrackSelection slice; it never changes which tracks were chosen, only their order and labels

package ordering

import (
	"math"
	"sort"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/index"
	"playlistcraft/internal/reason"
	"playlistcraft/internal/request"
	"playlistcraft/internal/scoring"
	"playlistcraft/internal/selection"
	"playlistcraft/internal/strategy"
)

// OrderedTrack is one position in the final playlist.
type OrderedTrack struct {
	Position        int
	TrackFileID     string
	Track           *catalogmodel.Track
	Section         strategy.SectionName
	Reasons         reason.List
	TransitionScore float64
}

// Order partitions selections into arc sections and greedily orders within
// each section by transition score, then runs surprise insertion.
func Order(selections []selection.TrackSelection, strat *strategy.PlaylistStrategy, idx *index.MatchingIndex, req *request.PlaylistRequest, candidatePool map[string]bool, affinity scoring.AffinityContext) []OrderedTrack {
	if len(selections) == 0 {
		return nil
	}

	assigned := assignSections(selections, strat.OrderingPlan, idx)

	ordered := make([]OrderedTrack, 0, len(selections))

	var previous *selection.TrackSelection

	for _, section := range assigned {
		orderedSection := greedyOrderSection(section.tracks, previous, idx)
		for _, entry := range orderedSection {
			ordered = append(ordered, OrderedTrack{
				TrackFileID:     entry.sel.TrackFileID,
				Track:           entry.sel.Track,
				Section:         section.name,
				Reasons:         entry.sel.Reasons,
				TransitionScore: entry.transitionScore,
			})
		}

		if len(orderedSection) > 0 {
			previous = &orderedSection[len(orderedSection)-1].sel
		}
	}

	ordered = insertSurprises(ordered, req, strat, idx, candidatePool, affinity)

	recomputeTransitionScores(ordered, idx)

	relabelSections(ordered, strat.OrderingPlan)

	for i := range ordered {
		ordered[i].Position = i
	}

	return ordered
}

// recomputeTransitionScores sets each entry's TransitionScore against its
// immediate predecessor in the final order, per §4.5's output step. Surprise
// insertion splices entries into the middle of the sequence, which leaves
// the track that used to follow an insertion point carrying a score computed
// against its old predecessor; this pass re-derives every score from the
// order actually produced.
func recomputeTransitionScores(ordered []OrderedTrack, idx *index.MatchingIndex) {
	for i := range ordered {
		if i == 0 {
			ordered[i].TransitionScore = 1.0
			continue
		}

		fromSel := toSelectionLike(ordered[i-1])
		toSel := toSelectionLike(ordered[i])

		ordered[i].TransitionScore = TransitionScore(&fromSel, &toSel, idx)
	}
}

type sectionGroup struct {
	name   strategy.SectionName
	tracks []selection.TrackSelection
}

// assignSections slices selections (sorted by score desc) into the
// OrderingPlan's sections, preferring tracks that match a section's
// tempoTarget/energyLevel when there are enough of them, per §4.5.
func assignSections(selections []selection.TrackSelection, plan strategy.OrderingPlan, idx *index.MatchingIndex) []sectionGroup {
	n := len(selections)

	byScore := make([]selection.TrackSelection, len(selections))
	copy(byScore, selections)
	sort.SliceStable(byScore, func(i, j int) bool { return byScore[i].TotalScore > byScore[j].TotalScore })

	remaining := make([]bool, n)
	for i := range remaining {
		remaining[i] = true
	}

	sections := plan.Sections
	if len(sections) == 0 {
		sections = []strategy.Section{{Name: strategy.SectionPeak, StartPosition: 0, EndPosition: 1}}
	}

	groups := make([]sectionGroup, 0, len(sections))

	boundaries := sectionBoundaries(sections, n)

	for si, sec := range sections {
		slotCount := boundaries[si]
		group := sectionGroup{name: sec.Name}

		preferred := preferredIndices(byScore, remaining, sec, idx)

		taken := 0
		for _, i := range preferred {
			if taken >= slotCount {
				break
			}

			group.tracks = append(group.tracks, byScore[i])
			remaining[i] = false
			taken++
		}

		for i := 0; i < n && taken < slotCount; i++ {
			if !remaining[i] {
				continue
			}

			group.tracks = append(group.tracks, byScore[i])
			remaining[i] = false
			taken++
		}

		groups = append(groups, group)
	}

	var leftover []selection.TrackSelection

	for i := 0; i < n; i++ {
		if remaining[i] {
			leftover = append(leftover, byScore[i])
		}
	}

	if len(leftover) > 0 {
		groups = appendToPeak(groups, leftover)
	}

	return groups
}

func appendToPeak(groups []sectionGroup, leftover []selection.TrackSelection) []sectionGroup {
	for i := range groups {
		if groups[i].name == strategy.SectionPeak {
			groups[i].tracks = append(groups[i].tracks, leftover...)
			return groups
		}
	}

	groups = append(groups, sectionGroup{name: strategy.SectionPeak, tracks: leftover})

	return groups
}

// sectionBoundaries computes floor(end*N) - floor(start*N) slots per
// section, per §4.5.
func sectionBoundaries(sections []strategy.Section, n int) []int {
	out := make([]int, len(sections))

	for i, sec := range sections {
		start := int(math.Floor(sec.StartPosition * float64(n)))
		end := int(math.Floor(sec.EndPosition * float64(n)))

		if end < start {
			end = start
		}

		out[i] = end - start
	}

	return out
}

func preferredIndices(byScore []selection.TrackSelection, remaining []bool, sec strategy.Section, idx *index.MatchingIndex) []int {
	if sec.TempoTarget == "" && sec.EnergyLevel == "" {
		return nil
	}

	var preferred []int

	for i, sel := range byScore {
		if !remaining[i] {
			continue
		}

		meta, ok := idx.Metadata(sel.TrackFileID)
		if !ok {
			continue
		}

		tempoOK := sec.TempoTarget == "" || meta.TempoBucket == sec.TempoTarget
		energyOK := sec.EnergyLevel == "" || catalogmodel.EnergyLevel(meta.MappedMood, meta.MappedActivity) == sec.EnergyLevel

		if tempoOK && energyOK {
			preferred = append(preferred, i)
		}
	}

	return preferred
}

// relabelSections recomputes each entry's section label from its final
// positional ratio against the plan boundaries, per §4.5's output step.
func relabelSections(ordered []OrderedTrack, plan strategy.OrderingPlan) {
	n := len(ordered)
	if n == 0 || len(plan.Sections) == 0 {
		return
	}

	for i := range ordered {
		ratio := float64(i) / float64(n)

		label := strategy.SectionPeak

		for _, sec := range plan.Sections {
			if ratio >= sec.StartPosition && ratio < sec.EndPosition {
				label = sec.Name

				break
			}
		}

		ordered[i].Section = label
	}
}
