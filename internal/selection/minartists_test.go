// ABOUTME: Tests for post-loop minArtists enforcement

package selection

import (
	"testing"

	"playlistcraft/internal/index"
	"playlistcraft/internal/request"
	"playlistcraft/internal/scoring"
	"playlistcraft/internal/strategy"
)

func TestEnforceMinArtistsAddsWhenRoomRemains(t *testing.T) {
	tracks := manyTracks(8) // 4 distinct artists
	idx := index.Build(tracks)

	minArtists := 4
	req := &request.PlaylistRequest{MinArtists: &minArtists, Length: request.Length{Type: request.LengthTracks, Value: 6}}
	strat := testStrategy()

	pool := make(map[string]bool)
	used := make(map[string]bool)

	for _, tr := range tracks {
		pool[tr.TrackFileID] = true
	}

	selected := []TrackSelection{{TrackFileID: tracks[0].TrackFileID, Track: tracks[0]}}
	used[tracks[0].TrackFileID] = true

	result := enforceMinArtists(req, strat, idx, pool, used, selected, 6, 1000, tracks[0].DurationOrDefault(), scoring.AffinityContext{})

	distinct := distinctArtists(result)
	if len(distinct) < minArtists {
		t.Errorf("got %d distinct artists, want at least %d", len(distinct), minArtists)
	}
}

func TestEnforceMinArtistsNoOpWhenAlreadySatisfied(t *testing.T) {
	tracks := manyTracks(4)
	idx := index.Build(tracks)

	minArtists := 1
	req := &request.PlaylistRequest{MinArtists: &minArtists, Length: request.Length{Type: request.LengthTracks, Value: 1}}
	strat := testStrategy()

	selected := []TrackSelection{{TrackFileID: tracks[0].TrackFileID, Track: tracks[0]}}
	used := map[string]bool{tracks[0].TrackFileID: true}
	pool := map[string]bool{tracks[0].TrackFileID: true}

	result := enforceMinArtists(req, strat, idx, pool, used, selected, 1, 1000, tracks[0].DurationOrDefault(), scoring.AffinityContext{})
	if len(result) != 1 {
		t.Errorf("expected no change, got %d selections", len(result))
	}
}

func TestEnforceMinArtistsNoOpWithoutMinArtists(t *testing.T) {
	tracks := manyTracks(4)
	idx := index.Build(tracks)

	req := &request.PlaylistRequest{Length: request.Length{Type: request.LengthTracks, Value: 1}}
	strat := testStrategy()

	selected := []TrackSelection{{TrackFileID: tracks[0].TrackFileID, Track: tracks[0]}}
	used := map[string]bool{tracks[0].TrackFileID: true}
	pool := map[string]bool{tracks[0].TrackFileID: true}

	result := enforceMinArtists(req, strat, idx, pool, used, selected, 1, 1000, tracks[0].DurationOrDefault(), scoring.AffinityContext{})
	if len(result) != 1 {
		t.Errorf("expected no change with MinArtists unset, got %d selections", len(result))
	}
}
