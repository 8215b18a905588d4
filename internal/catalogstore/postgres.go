// ABOUTME: Postgres-backed CatalogStore, keyed by the composite (track_file_id, library_root_id) primary key of spec §3
// ABOUTME: Grounded on the pgx/v5 pgxpool dependency pulled in from HarshPatel5940-playwise's go.mod

package catalogstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"playlistcraft/internal/catalogmodel"
)

// PostgresStore is a CatalogStore backed by a connection pool. The schema
// assumption is a single "tracks" table keyed by (track_file_id,
// library_root_id), with the enhanced fields (mood, activity,
// similar_artists) stored in columns of their own.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore builds a PostgresStore from a DSN.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting catalog store: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

const loadTracksQuery = `
SELECT track_file_id, library_root_id, title, artist, album, genres, year,
       track_no, duration_seconds, bpm, mood, activity, similar_artists,
       added_at, updated_at
FROM tracks
WHERE library_root_id = $1
ORDER BY track_file_id`

// LoadTracks returns every track scoped to libraryRootID as an immutable
// in-process snapshot for one generation's matching index.
func (p *PostgresStore) LoadTracks(ctx context.Context, libraryRootID string) ([]*catalogmodel.Track, error) {
	rows, err := p.pool.Query(ctx, loadTracksQuery, libraryRootID)
	if err != nil {
		return nil, fmt.Errorf("loading tracks for library %s: %w", libraryRootID, err)
	}
	defer rows.Close()

	var tracks []*catalogmodel.Track

	for rows.Next() {
		t, scanErr := scanTrack(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scanning track row: %w", scanErr)
		}

		tracks = append(tracks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating track rows: %w", err)
	}

	return tracks, nil
}

func scanTrack(row pgx.Rows) (*catalogmodel.Track, error) {
	t := &catalogmodel.Track{}

	err := row.Scan(
		&t.TrackFileID, &t.LibraryRootID, &t.Title, &t.Artist, &t.Album, &t.Genres, &t.Year,
		&t.TrackNo, &t.DurationSeconds, &t.BPM, &t.Enhanced.Mood, &t.Enhanced.Activity, &t.Enhanced.SimilarArtists,
		&t.AddedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return t, nil
}

const bulkUpdateBPMStmt = `
UPDATE tracks SET bpm = $3, updated_at = now()
WHERE track_file_id = $1 AND library_root_id = $2`

const bulkUpdateDurationStmt = `
UPDATE tracks SET duration_seconds = $3, updated_at = now()
WHERE track_file_id = $1 AND library_root_id = $2`

// BulkUpdate writes BPM/duration backfill values inside a single
// transaction, per spec §6's "used for BPM backfill" note. The engine's
// core never calls this during selection.
func (p *PostgresStore) BulkUpdate(ctx context.Context, updates []Update) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning bulk update transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, u := range updates {
		if u.BPM != nil {
			if _, err := tx.Exec(ctx, bulkUpdateBPMStmt, u.TrackFileID, u.LibraryRootID, *u.BPM); err != nil {
				return fmt.Errorf("updating bpm for %s: %w", u.TrackFileID, err)
			}
		}

		if u.DurationSeconds != nil {
			if _, err := tx.Exec(ctx, bulkUpdateDurationStmt, u.TrackFileID, u.LibraryRootID, *u.DurationSeconds); err != nil {
				return fmt.Errorf("updating duration for %s: %w", u.TrackFileID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing bulk update: %w", err)
	}

	return nil
}
