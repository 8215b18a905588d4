// ABOUTME: Mood-match and activity-match component scorers (spec §4.3)
// ABOUTME: Both use intersection-size-over-requested-count; empty request scores 1, untagged track scores 0.5 (neutral)

package scoring

import (
	"fmt"

	"playlistcraft/internal/reason"
)

func categoryScore(requested, have []string, kind reason.Kind, label string) (float64, reason.List) {
	if len(requested) == 0 {
		return 1.0, nil
	}

	if len(have) == 0 {
		return 0.5, nil
	}

	haveSet := make(map[string]bool, len(have))
	for _, h := range have {
		haveSet[h] = true
	}

	matched := 0

	for _, r := range requested {
		if haveSet[r] {
			matched++
		}
	}

	score := float64(matched) / float64(len(requested))

	var reasons reason.List
	if matched > 0 {
		reasons = reasons.With(reason.Reason{
			Kind:        kind,
			Explanation: fmt.Sprintf("Matches %d requested %s categor%s", matched, label, pluralSuffix(matched)),
			Score:       score,
		})
	}

	return score, reasons
}

func pluralSuffix(n int) string {
	if n == 1 {
		return "y"
	}

	return "ies"
}

func moodScore(requestedMood, trackMood []string) (float64, reason.List) {
	return categoryScore(requestedMood, trackMood, reason.KindMoodMatch, "mood")
}

func activityScore(requestedActivity, trackActivity []string) (float64, reason.List) {
	return categoryScore(requestedActivity, trackActivity, reason.KindActivityMatch, "activity")
}
