// ABOUTME: Defines Track and its enhanced/derived metadata for the playlist engine
// ABOUTME: Mirrors the catalog's composite identity and the optional manually-edited fields

// Package catalogmodel holds the catalog entity types and the normalization
// primitives (genre, mood, activity, tempo) that every other engine package
// builds on.
package catalogmodel

import "time"

// DefaultDurationSeconds is used in scoring whenever a track's duration is
// unknown. It is never persisted back onto the track.
const DefaultDurationSeconds = 180

// Track is the atomic catalog entity. TrackFileID is stable and unique
// within a LibraryRootID; the composite key is {TrackFileID}-{LibraryRootID}.
type Track struct {
	TrackFileID   string
	LibraryRootID string

	Title  string
	Artist string
	Album  string
	Genres []string // ordered, first-seen casing preserved for display
	Year   *int
	TrackNo *int

	DurationSeconds *int
	BPM             *float64

	Enhanced EnhancedMetadata

	AddedAt   time.Time
	UpdatedAt time.Time
}

// EnhancedMetadata holds the optional, possibly manually-edited fields a
// user can layer on top of raw tags.
type EnhancedMetadata struct {
	Mood           []string
	Activity       []string
	Tempo          *TempoOverride
	Genres         []string
	SimilarArtists []string
	ManualFields   map[string]bool
}

// TempoOverride lets a manual edit pin either a numeric BPM or a bucket name.
type TempoOverride struct {
	BPM    *float64
	Bucket TempoBucket
}

// CompositeKey returns the track's unique identity within a catalog.
func (t *Track) CompositeKey() string {
	return t.TrackFileID + "-" + t.LibraryRootID
}

// DurationOrDefault returns the track's duration, falling back to
// DefaultDurationSeconds when unset, without ever mutating the track.
func (t *Track) DurationOrDefault() int {
	if t.DurationSeconds != nil {
		return *t.DurationSeconds
	}

	return DefaultDurationSeconds
}

// EffectiveBPM prefers a manual tempo override's BPM over the tag-derived BPM.
func (t *Track) EffectiveBPM() *float64 {
	if t.Enhanced.Tempo != nil && t.Enhanced.Tempo.BPM != nil {
		return t.Enhanced.Tempo.BPM
	}

	return t.BPM
}

// Metadata is the derived, per-track view stored in a MatchingIndex.
type Metadata struct {
	Artist           string
	NormalizedGenres []string
	TempoBucket      TempoBucket
	MappedMood       []string
	MappedActivity   []string
}

// Derive computes the normalized metadata view for a track. It never
// mutates the track and is idempotent: Derive(t) called twice returns
// equal results.
func Derive(t *Track) Metadata {
	genres := t.Genres
	if len(t.Enhanced.Genres) > 0 {
		genres = t.Enhanced.Genres
	}

	bucket := BucketTempo(t.EffectiveBPM())
	if t.Enhanced.Tempo != nil && t.Enhanced.Tempo.Bucket != "" {
		bucket = t.Enhanced.Tempo.Bucket
	}

	mood := MapMood(t.Enhanced.Mood)
	activity := MapActivity(t.Enhanced.Activity)

	if len(activity) == 0 {
		activity = InferActivity(NormalizeGenres(genres), bucket)
	}

	return Metadata{
		Artist:           t.Artist,
		NormalizedGenres: NormalizeGenres(genres),
		TempoBucket:      bucket,
		MappedMood:       mood,
		MappedActivity:   activity,
	}
}
