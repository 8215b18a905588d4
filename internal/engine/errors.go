// ABOUTME: Engine-level error taxonomy aliases, per spec §7 made concrete
// ABOUTME: These are the same sentinel values the lower packages already return; callers check with errors.Is against either

package engine

import (
	"playlistcraft/internal/request"
	"playlistcraft/internal/selection"
)

var (
	// ErrNoCandidates is returned when the candidate pool is empty after the filter chain.
	ErrNoCandidates = selection.ErrNoCandidates
	// ErrNoTracksAvailable is returned when the catalog snapshot has nothing to select from.
	ErrNoTracksAvailable = selection.ErrNoTracksAvailable
	// ErrInvalidRequest is returned when PlaylistRequest.Validate rejects the request.
	ErrInvalidRequest = request.ErrInvalidRequest
)
