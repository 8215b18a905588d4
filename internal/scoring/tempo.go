// ABOUTME: Tempo-match component scorer (spec §4.3)
// ABOUTME: Bucket match, BPM range (only when bpm is present), then strategy tempoGuidance raises the floor

package scoring

import (
	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/reason"
	"playlistcraft/internal/request"
	"playlistcraft/internal/strategy"
)

func tempoScore(track *catalogmodel.Track, meta catalogmodel.Metadata, tempo request.Tempo, guidance strategy.TempoGuidance) (float64, reason.List) {
	score := 1.0
	haveSignal := false
	var reasons reason.List

	if tempo.Bucket != "" {
		haveSignal = true

		switch {
		case meta.TempoBucket == tempo.Bucket:
			score = 1.0
			reasons = reasons.With(reason.Reason{Kind: reason.KindTempoMatch, Explanation: "Matches requested tempo", Score: score})
		case meta.TempoBucket == catalogmodel.TempoUnknown:
			score = 0.5
		default:
			score = 0.2
		}
	}

	if tempo.BPMRange != nil {
		if bpm := track.EffectiveBPM(); bpm != nil {
			haveSignal = true

			if *bpm >= tempo.BPMRange.Min && *bpm <= tempo.BPMRange.Max {
				score = 1.0
				reasons = reasons.With(reason.Reason{Kind: reason.KindTempoMatch, Explanation: "BPM within requested range", Score: score})
			} else if score > 0.2 {
				score = 0.2
			}
		}
	}

	if guidance.TargetBucket != "" {
		haveSignal = true

		if meta.TempoBucket == guidance.TargetBucket {
			score = maxFloat(score, 0.9)
		} else if guidance.AllowVariation && meta.TempoBucket != catalogmodel.TempoUnknown {
			score = maxFloat(score, 0.6)
		}
	}

	if !haveSignal {
		return 1.0, nil
	}

	return score, reasons
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}

	return b
}
