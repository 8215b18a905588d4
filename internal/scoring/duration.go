// ABOUTME: Duration-fit component scorer (spec §4.3)
// ABOUTME: Compares a track's length against the average remaining slot budget

package scoring

import (
	"fmt"
	"math"

	"playlistcraft/internal/reason"
)

func durationFitScore(trackDuration, currentDuration, targetDuration, remainingSlots int) (float64, reason.List) {
	slots := remainingSlots
	if slots < 1 {
		slots = 1
	}

	avgRemaining := float64(targetDuration-currentDuration) / float64(slots)
	if avgRemaining <= 0 {
		avgRemaining = float64(trackDuration)
	}

	fit := 1 - math.Abs(float64(trackDuration)-avgRemaining)/(avgRemaining*0.5)
	if fit < 0 {
		fit = 0
	}

	var reasons reason.List

	switch {
	case fit > 0.8:
		reasons = reasons.With(reason.Reason{Kind: reason.KindDurationFit, Explanation: fmt.Sprintf("Duration fits the remaining budget well (%.0fs)", avgRemaining), Score: fit})
	case fit > 0.5:
		reasons = reasons.With(reason.Reason{Kind: reason.KindDurationFit, Explanation: "Duration reasonably fits the remaining budget", Score: fit})
	}

	return fit, reasons
}
