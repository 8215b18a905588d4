// ABOUTME: Sentinel errors for the selection loop

package selection

import "errors"

// ErrNoCandidates is returned when the candidate pool is empty after the
// filter chain in BuildCandidatePool, per spec §7.
var ErrNoCandidates = errors.New("no tracks match the playlist criteria")

// ErrNoTracksAvailable is returned when the catalog snapshot is empty after
// exclusions are applied (e.g. a remix excluding every track), per spec §7.
var ErrNoTracksAvailable = errors.New("catalog has no tracks available after exclusions")
