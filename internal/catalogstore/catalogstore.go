// ABOUTME: CatalogStore is the persistent-catalog collaborator interface of spec §6, keyed by composite (trackFileId, libraryRootId)
// ABOUTME: The engine's core never calls BulkUpdate during selection; it exists for the BPM-backfill pathway described in §6

package catalogstore

import (
	"context"

	"playlistcraft/internal/catalogmodel"
)

// Update is one field-level BPM/tag backfill write.
type Update struct {
	TrackFileID     string
	LibraryRootID   string
	BPM             *float64
	DurationSeconds *int
}

// CatalogStore is the persistent catalog collaborator of spec §6. The core
// consumes only the in-process Track values it returns; it never reaches
// into the store directly.
type CatalogStore interface {
	LoadTracks(ctx context.Context, libraryRootID string) ([]*catalogmodel.Track, error)
	BulkUpdate(ctx context.Context, updates []Update) error
}
