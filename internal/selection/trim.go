// ABOUTME: Track-count mode overshoot trimming (spec §4.4)

package selection

import "sort"

// trimToTarget sorts descending by score and truncates to target, used only
// in track-count mode as a guard for a selection longer than target.
func trimToTarget(selected []TrackSelection, target int) []TrackSelection {
	out := make([]TrackSelection, len(selected))
	copy(out, selected)

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })

	if len(out) > target {
		out = out[:target]
	}

	return out
}
