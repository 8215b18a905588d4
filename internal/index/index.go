// ABOUTME: MatchingIndex: an immutable, preprocessed view of the catalog for fast candidate selection
// ABOUTME: Built in a single linear pass; read-only for the lifetime of a generation

package index

import "playlistcraft/internal/catalogmodel"

// MatchingIndex is built from a catalog snapshot and never mutated again.
// Multiple concurrent generations may share one safely.
type MatchingIndex struct {
	AllTrackIDs  map[string]bool
	ByGenre      map[string]map[string]bool
	ByTempoBucket map[catalogmodel.TempoBucket]map[string]bool
	ByMood       map[string]map[string]bool
	ByActivity   map[string]map[string]bool
	TrackMetadata map[string]catalogmodel.Metadata

	tracks map[string]*catalogmodel.Track
}

// Build constructs a MatchingIndex from a catalog snapshot in one linear
// pass, O(tracks * average(genres+moods+activities)).
func Build(tracks []*catalogmodel.Track) *MatchingIndex {
	idx := &MatchingIndex{
		AllTrackIDs:   make(map[string]bool, len(tracks)),
		ByGenre:       make(map[string]map[string]bool),
		ByTempoBucket: make(map[catalogmodel.TempoBucket]map[string]bool),
		ByMood:        make(map[string]map[string]bool),
		ByActivity:    make(map[string]map[string]bool),
		TrackMetadata: make(map[string]catalogmodel.Metadata, len(tracks)),
		tracks:        make(map[string]*catalogmodel.Track, len(tracks)),
	}

	for _, t := range tracks {
		id := t.TrackFileID
		idx.AllTrackIDs[id] = true
		idx.tracks[id] = t

		meta := catalogmodel.Derive(t)
		idx.TrackMetadata[id] = meta

		for _, g := range meta.NormalizedGenres {
			addToBucket(idx.ByGenre, g, id)
		}

		addToTempoBucket(idx.ByTempoBucket, meta.TempoBucket, id)

		for _, m := range meta.MappedMood {
			addToBucket(idx.ByMood, m, id)
		}

		for _, a := range meta.MappedActivity {
			addToBucket(idx.ByActivity, a, id)
		}
	}

	return idx
}

func addToBucket(m map[string]map[string]bool, key, id string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]bool)
		m[key] = set
	}

	set[id] = true
}

func addToTempoBucket(m map[catalogmodel.TempoBucket]map[string]bool, key catalogmodel.TempoBucket, id string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]bool)
		m[key] = set
	}

	set[id] = true
}

// Track returns the full catalog track for an id, or nil if absent.
func (idx *MatchingIndex) Track(id string) *catalogmodel.Track {
	return idx.tracks[id]
}

// Metadata returns the derived metadata for an id.
func (idx *MatchingIndex) Metadata(id string) (catalogmodel.Metadata, bool) {
	m, ok := idx.TrackMetadata[id]

	return m, ok
}

// Len reports the catalog size backing this index.
func (idx *MatchingIndex) Len() int {
	return len(idx.AllTrackIDs)
}

// Union returns the union of ByGenre[g] for each g in genres.
func Union(buckets map[string]map[string]bool, keys []string) map[string]bool {
	out := make(map[string]bool)

	for _, k := range keys {
		for id := range buckets[k] {
			out[id] = true
		}
	}

	return out
}

// Intersect returns a ∩ b (new set, inputs untouched).
func Intersect(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	small, big := a, b

	if len(b) < len(a) {
		small, big = b, a
	}

	for id := range small {
		if big[id] {
			out[id] = true
		}
	}

	return out
}

// Subtract returns a \ b (new set, inputs untouched).
func Subtract(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool, len(a))

	for id := range a {
		if !b[id] {
			out[id] = true
		}
	}

	return out
}
