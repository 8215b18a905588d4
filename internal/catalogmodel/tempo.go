// ABOUTME: Tempo bucketing with fixed BPM thresholds
// ABOUTME: Bucketing is idempotent: BucketTempo applied to an already-bucketed value is a no-op in effect

package catalogmodel

// TempoBucket is a coarse tempo classification used throughout matching,
// scoring, and ordering.
type TempoBucket string

const (
	TempoSlow    TempoBucket = "slow"
	TempoMedium  TempoBucket = "medium"
	TempoFast    TempoBucket = "fast"
	TempoUnknown TempoBucket = "unknown"
)

const (
	slowFastThresholdBPM   = 90.0
	mediumFastThresholdBPM = 140.0
)

// BucketTempo classifies a BPM value into a TempoBucket. A nil bpm yields
// TempoUnknown. Re-bucketing an already-known bucket (by passing its
// representative BPM back through) yields the same bucket.
func BucketTempo(bpm *float64) TempoBucket {
	if bpm == nil {
		return TempoUnknown
	}

	switch {
	case *bpm < slowFastThresholdBPM:
		return TempoSlow
	case *bpm < mediumFastThresholdBPM:
		return TempoMedium
	default:
		return TempoFast
	}
}

// tempoOrdinal gives buckets a position on a line so transition scoring can compute
// a circular-free delta between them (slow=0, medium=1, fast=2).
var tempoOrdinal = map[TempoBucket]int{
	TempoSlow:   0,
	TempoMedium: 1,
	TempoFast:   2,
}

// TempoDelta returns the ordinal distance between two buckets: 0 when equal,
// 1 when adjacent (slow<->medium, medium<->fast), 2 for slow<->fast. Returns
// -1 if either bucket is unknown (callers treat that as "no signal").
func TempoDelta(a, b TempoBucket) int {
	oa, ok1 := tempoOrdinal[a]
	ob, ok2 := tempoOrdinal[b]

	if !ok1 || !ok2 {
		return -1
	}

	d := oa - ob
	if d < 0 {
		d = -d
	}

	return d
}
