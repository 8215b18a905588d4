// ABOUTME: File-backed CatalogStore that walks a library root and reads tag data directly off audio files
// ABOUTME: Grounded on stojg-playlist-sorter's playlist/track.go dhowden/tag metadata reader

package catalogstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dhowden/tag"

	"playlistcraft/internal/catalogmodel"
)

// FileStore scans a directory tree for audio files and derives Track values
// from their embedded tags, the way track.go's GetTrackMetadata does.
type FileStore struct {
	RootDir string

	// byID lets BulkUpdate find a previously-loaded track's enhanced
	// metadata without rescanning the filesystem.
	byID map[string]*catalogmodel.Track
}

// NewFileStore builds a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{RootDir: dir, byID: make(map[string]*catalogmodel.Track)}
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".ogg":  true,
}

// LoadTracks walks RootDir, reading tags from every recognized audio file.
// libraryRootID is stamped onto every returned Track's LibraryRootID.
func (f *FileStore) LoadTracks(ctx context.Context, libraryRootID string) ([]*catalogmodel.Track, error) {
	var tracks []*catalogmodel.Track

	err := filepath.WalkDir(f.RootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() || !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		t, readErr := readTrack(path, libraryRootID)
		if readErr != nil {
			return nil // skip unreadable files, never fail the whole scan
		}

		tracks = append(tracks, t)
		f.byID[t.CompositeKey()] = t

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning catalog root %s: %w", f.RootDir, err)
	}

	return tracks, nil
}

func readTrack(path, libraryRootID string) (*catalogmodel.Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("reading tags from %s: %w", path, err)
	}

	title := meta.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	var genres []string
	if g := meta.Genre(); g != "" {
		genres = []string{g}
	}

	trackNo, _ := meta.Track()

	info, statErr := os.Stat(path)

	track := &catalogmodel.Track{
		TrackFileID:   stableFileID(path),
		LibraryRootID: libraryRootID,
		Title:         title,
		Artist:        meta.Artist(),
		Album:         meta.Album(),
		Genres:        genres,
		BPM:           parseBPMTag(meta.Raw()),
		AddedAt:       time.Now(),
		UpdatedAt:     time.Now(),
	}

	if trackNo > 0 {
		track.TrackNo = &trackNo
	}

	if year := meta.Year(); year > 0 {
		track.Year = &year
	}

	if statErr == nil {
		track.UpdatedAt = info.ModTime()
	}

	return track, nil
}

// parseBPMTag mirrors track.go's fallback scan across the tag names that
// vary by audio format.
func parseBPMTag(raw map[string]any) *float64 {
	if raw == nil {
		return nil
	}

	for _, key := range []string{"BPM", "TBPM", "bpm", "tempo"} {
		val, ok := raw[key]
		if !ok {
			continue
		}

		var bpm float64

		switch v := val.(type) {
		case string:
			bpm, _ = strconv.ParseFloat(v, 64)
		case int:
			bpm = float64(v)
		case float64:
			bpm = v
		}

		if bpm > 0 {
			return &bpm
		}
	}

	return nil
}

func stableFileID(path string) string {
	return filepath.ToSlash(path)
}

// BulkUpdate applies a BPM/duration backfill to already-loaded tracks. It
// never touches the underlying audio files; it only updates the in-memory
// view LoadTracks will keep returning for this process's lifetime.
func (f *FileStore) BulkUpdate(ctx context.Context, updates []Update) error {
	for _, u := range updates {
		key := u.TrackFileID + "-" + u.LibraryRootID

		t, ok := f.byID[key]
		if !ok {
			continue
		}

		if u.BPM != nil {
			t.BPM = u.BPM
		}

		if u.DurationSeconds != nil {
			t.DurationSeconds = u.DurationSeconds
		}

		t.UpdatedAt = time.Now()
	}

	return nil
}
