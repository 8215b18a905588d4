// ABOUTME: GeneratedPlaylist, the engine's terminal output type, and the Engine that wires every collaborator together
// ABOUTME: Mirrors the teacher's top-level orchestration shape in main.go/cli.go, generalized from a GA run to the full pipeline of spec §4

package engine

import (
	"time"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/catalogstore"
	"playlistcraft/internal/discovery"
	"playlistcraft/internal/index"
	"playlistcraft/internal/oracle"
	"playlistcraft/internal/ordering"
	"playlistcraft/internal/selection"
	"playlistcraft/internal/strategy"
)

// GeneratedPlaylist is the engine's terminal output, per spec §3. The
// caller owns it outright; nothing inside the engine retains a reference.
type GeneratedPlaylist struct {
	ID          string
	Title       string
	Description string

	TrackFileIDs    []string // final order, library tracks only
	TrackSelections []selection.TrackSelection
	OrderedTracks   []ordering.OrderedTrack
	DiscoveryTracks []discovery.PlaylistEntry // nil unless EnableDiscovery; discovery entries only
	FinalEntries    []discovery.PlaylistEntry // the complete interleaved sequence, library + discovery

	TotalDuration int
	Summary       selection.Summary
	Strategy      strategy.PlaylistStrategy
	CreatedAt     time.Time

	// LastOracleError and LastDiscoveryErrors are diagnostic-only, per §7's
	// propagation policy: recovered failures never become a returned error.
	LastOracleError     error
	LastDiscoveryErrors []error
}

// Engine holds the collaborators a generation call needs. A zero-value
// Engine (Refiner and Discovery both nil) runs fully deterministically with
// the heuristic strategy and no discovery interleave.
type Engine struct {
	Store     catalogstore.CatalogStore
	Refiner   oracle.Refiner
	Discovery discovery.Collaborator

	// LibraryRootID scopes which catalog slice Store.LoadTracks returns.
	LibraryRootID string
}

// New builds an Engine. Refiner and Discovery may be nil (see oracle.NoOp
// for an explicit no-op refiner when a config toggle disables the oracle
// path without removing the collaborator wiring).
func New(store catalogstore.CatalogStore, refiner oracle.Refiner, discoveryCollab discovery.Collaborator, libraryRootID string) *Engine {
	return &Engine{Store: store, Refiner: refiner, Discovery: discoveryCollab, LibraryRootID: libraryRootID}
}

func buildIndex(tracks []*catalogmodel.Track) *index.MatchingIndex {
	return index.Build(tracks)
}
