// ABOUTME: Deterministic-but-unique GeneratedPlaylist.ID derivation: a request hash folded into a uuid
// ABOUTME: The id is identity only, per spec §4.4 — it never feeds back into selection or scoring

package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"playlistcraft/internal/request"
	"playlistcraft/internal/selection"
)

// playlistNamespace roots the SHA1 uuid derivation so ids stay stable across
// processes for the same seed material.
var playlistNamespace = uuid.MustParse("7c5e5b0e-6f1b-4e8f-9a9e-8d6b9f2c6a11")

// newPlaylistID derives a playlist id from the request, the library root,
// and the creation instant. Two generations of the same request a second
// apart get different ids; the same request replayed through DeriveSeed
// still gets a fresh id here since creation time is part of the material.
func newPlaylistID(req *request.PlaylistRequest, libraryRootID string, createdAt time.Time) string {
	seed := selection.DeriveSeed(req)
	material := fmt.Sprintf("%d|%s|%d", seed, libraryRootID, createdAt.UnixNano())

	return uuid.NewSHA1(playlistNamespace, []byte(material)).String()
}
