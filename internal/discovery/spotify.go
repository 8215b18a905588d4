// ABOUTME: Spotify-backed discovery Collaborator, grounded on MonkyMars-vibecast's client-credentials auth and recommendation calls
// ABOUTME: Read-only: only ever queries Spotify's catalog, never writes to a user's account

package discovery

import (
	"context"
	"fmt"
	"strings"

	spotify "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2/clientcredentials"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/request"
	"playlistcraft/internal/strategy"
)

// SpotifyAuthConfig carries the client-credentials secrets; both come from
// the environment (see cmd/playlistgen), never hardcoded.
type SpotifyAuthConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// SpotifyCollaborator implements Collaborator against Spotify's
// recommendations endpoint. Explanations are templated locally; Spotify has
// no text-generation endpoint to call.
type SpotifyCollaborator struct {
	client *spotify.Client
}

// NewSpotifyCollaborator builds a client-credentials-authenticated client,
// the same flow as auth.go's GetSpotifyClient.
func NewSpotifyCollaborator(cfg SpotifyAuthConfig) *SpotifyCollaborator {
	authConfig := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	client := spotify.New(authConfig.Client(context.Background()))

	return &SpotifyCollaborator{client: client}
}

// FindDiscoveryTracks seeds a recommendation request from the inspiring
// library track's artist/genres and filters out already-used ids.
func (s *SpotifyCollaborator) FindDiscoveryTracks(ctx context.Context, libraryTrack *catalogmodel.Track, req *request.PlaylistRequest, strat *strategy.PlaylistStrategy, excludeIDs map[string]bool) ([]Candidate, error) {
	seeds := spotify.Seeds{}

	if len(libraryTrack.Genres) > 0 {
		seeds.Genres = append(seeds.Genres, strings.ToLower(libraryTrack.Genres[0]))
	}

	attrs := spotify.NewTrackAttributes()
	if req.Tempo.BPMRange != nil {
		attrs = attrs.MinTempo(req.Tempo.BPMRange.Min).MaxTempo(req.Tempo.BPMRange.Max)
	}

	recs, err := s.client.GetRecommendations(ctx, seeds, attrs, spotify.Limit(5))
	if err != nil {
		return nil, fmt.Errorf("spotify recommendations: %w", err)
	}

	out := make([]Candidate, 0, len(recs.Tracks))

	for _, t := range recs.Tracks {
		id := string(t.ID)
		if excludeIDs[id] {
			continue
		}

		var artist string
		if len(t.Artists) > 0 {
			artist = t.Artists[0].Name
		}

		var album string
		if t.Album.Name != "" {
			album = t.Album.Name
		}

		seconds := int(t.Duration / 1000)

		out = append(out, Candidate{
			ID:              id,
			Title:           t.Name,
			Artist:          artist,
			Album:           album,
			Genres:          libraryTrack.Genres,
			DurationSeconds: &seconds,
			Score:           0.5,
		})
	}

	return out, nil
}

// GenerateExplanation has no Spotify equivalent; callers fall back to the
// package's templated explanation.
func (s *SpotifyCollaborator) GenerateExplanation(ctx context.Context, candidate Candidate, libraryTrack *catalogmodel.Track, req *request.PlaylistRequest) (string, error) {
	return "", fmt.Errorf("spotify collaborator does not generate explanations")
}
