// ABOUTME: Generate runs the full pipeline: validate, load catalog, build index, derive strategy, select, order, interleave discovery, summarize
// ABOUTME: A single generation call is single-threaded and cooperative, per spec §5; multiple concurrent calls may share one Engine safely

package engine

import (
	"context"
	"fmt"
	"time"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/discovery"
	"playlistcraft/internal/ordering"
	"playlistcraft/internal/request"
	"playlistcraft/internal/scoring"
	"playlistcraft/internal/selection"
	"playlistcraft/internal/strategy"
)

// Generate produces a fresh GeneratedPlaylist for req. It returns a single
// fatal error when an invariant is violated (invalid request, empty
// catalog, empty candidate pool); every other collaborator failure is
// recovered locally and surfaced only through the result's diagnostic
// fields, per §7.
func (e *Engine) Generate(ctx context.Context, req *request.PlaylistRequest) (*GeneratedPlaylist, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tracks, err := e.Store.LoadTracks(ctx, e.LibraryRootID)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	return e.generateFromTracks(ctx, req, tracks, time.Now())
}

func (e *Engine) generateFromTracks(ctx context.Context, req *request.PlaylistRequest, tracks []*catalogmodel.Track, createdAt time.Time) (*GeneratedPlaylist, error) {
	if len(tracks) == 0 {
		return nil, ErrNoTracksAvailable
	}

	idx := buildIndex(tracks)

	summary := strategy.Summarize(tracks)
	strat := strategy.Derive(ctx, req, summary, e.Refiner)

	seed := selection.DeriveSeed(req)

	selResult, err := selection.Select(ctx, req, &strat, idx, tracks, seed, e.Refiner)
	if err != nil {
		return nil, err
	}

	affinity := selection.BuildAffinitySet(req, idx, tracks)
	affinityCtx := scoring.AffinityContext{Artists: affinity.Artists, Genres: affinity.Genres}

	pool := selection.BuildCandidatePool(req, &strat, idx, affinity)

	ordered := ordering.Order(selResult.Selections, &strat, idx, req, pool, affinityCtx)

	finalEntries, discoveryErrs := discovery.Interleave(ctx, ordered, req, &strat, e.Discovery)

	playlistSummary := selection.ComputeSummary(selResult.Selections, idx)

	var libraryTrackIDs []string

	var discoveryOnly []discovery.PlaylistEntry

	for _, entry := range finalEntries {
		if entry.IsDiscovery {
			discoveryOnly = append(discoveryOnly, entry)
			continue
		}

		libraryTrackIDs = append(libraryTrackIDs, entry.TrackFileID)
	}

	title, description := strat.Title, strat.Description
	if title == "" {
		title = "Playlist"
	}

	result := &GeneratedPlaylist{
		ID:              newPlaylistID(req, e.LibraryRootID, createdAt),
		Title:           title,
		Description:     description,
		TrackFileIDs:    libraryTrackIDs,
		TrackSelections: selResult.Selections,
		OrderedTracks:   ordered,
		FinalEntries:    finalEntries,
		TotalDuration:   playlistSummary.TotalDuration,
		Summary:         playlistSummary,
		Strategy:        strat,
		CreatedAt:       createdAt,
		LastDiscoveryErrors: discoveryErrs,
	}

	if req.EnableDiscovery {
		result.DiscoveryTracks = discoveryOnly
	}

	if selResult.OracleConsumed && selResult.OracleErr != nil {
		result.LastOracleError = selResult.OracleErr
	}

	return result, nil
}
