// ABOUTME: Candidate pool construction for the selection loop (spec §4.4)
// ABOUTME: Applies the genre/affinity/exclusion/tempo/mood/activity filter chain in the order spec §4.4 prescribes

package selection

import (
	"strings"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/index"
	"playlistcraft/internal/request"
	"playlistcraft/internal/strategy"
)

// AffinitySet is the derived related-artist/related-genre context, computed
// once from suggested artists/albums/tracks and their similarArtists.
type AffinitySet struct {
	Artists map[string]bool // folded (lowercased, trimmed) artist names
	Genres  map[string]bool // normalized genre names
}

// BuildAffinitySet derives the affinity context from the request's
// suggestions and the catalog's similarArtists tags, per the Glossary.
func BuildAffinitySet(req *request.PlaylistRequest, idx *index.MatchingIndex, allTracks []*catalogmodel.Track) AffinitySet {
	set := AffinitySet{Artists: make(map[string]bool), Genres: make(map[string]bool)}

	suggestedArtists := make(map[string]bool, len(req.SuggestedArtists))
	for _, a := range req.SuggestedArtists {
		suggestedArtists[fold(a)] = true
		set.Artists[fold(a)] = true
	}

	suggestedAlbums := make(map[string]bool, len(req.SuggestedAlbums))
	for _, a := range req.SuggestedAlbums {
		suggestedAlbums[fold(a)] = true
	}

	suggestedTracks := make(map[string]bool, len(req.SuggestedTracks))
	for _, t := range req.SuggestedTracks {
		suggestedTracks[fold(t)] = true
	}

	if len(suggestedArtists) == 0 && len(suggestedAlbums) == 0 && len(suggestedTracks) == 0 {
		return set
	}

	for _, t := range allTracks {
		matches := suggestedArtists[fold(t.Artist)] || suggestedAlbums[fold(t.Album)] || suggestedTracks[fold(t.Title)]
		if !matches {
			continue
		}

		for _, similar := range t.Enhanced.SimilarArtists {
			set.Artists[fold(similar)] = true
		}

		if meta, ok := idx.Metadata(t.TrackFileID); ok {
			for _, g := range meta.NormalizedGenres {
				set.Genres[g] = true
			}
		}
	}

	return set
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// BuildCandidatePool applies the filter chain of spec §4.4 and returns the
// surviving track ids. An empty result means the caller should return
// ErrNoCandidates.
func BuildCandidatePool(req *request.PlaylistRequest, strat *strategy.PlaylistStrategy, idx *index.MatchingIndex, affinity AffinitySet) map[string]bool {
	genreKeys := dedupeStrings(append(append(append([]string{}, requiredOrRequestedGenres(req, strat)...), strat.GenreMix.PrimaryGenres...), strat.GenreMix.SecondaryGenres...))

	var pool map[string]bool
	if len(genreKeys) == 0 || len(req.Genres) == 0 {
		pool = cloneSet(idx.AllTrackIDs)
	} else {
		pool = index.Union(idx.ByGenre, genreKeys)
		if len(pool) == 0 {
			pool = cloneSet(idx.AllTrackIDs)
		}
	}

	if len(affinity.Artists) > 0 {
		for id := range idx.AllTrackIDs {
			meta, ok := idx.Metadata(id)
			if ok && affinity.Artists[fold(meta.Artist)] {
				pool[id] = true
			}
		}
	}

	if len(strat.Constraints.ExcludedGenres) > 0 {
		excluded := index.Union(idx.ByGenre, strat.Constraints.ExcludedGenres)
		pool = index.Subtract(pool, excluded)
	}

	if strat.TempoGuidance.TargetBucket != "" && !strat.TempoGuidance.AllowVariation {
		pool = index.Intersect(pool, idx.ByTempoBucket[strat.TempoGuidance.TargetBucket])
	}

	if len(req.DisallowedArtists) > 0 {
		disallowed := make(map[string]bool, len(req.DisallowedArtists))
		for _, a := range req.DisallowedArtists {
			disallowed[fold(a)] = true
		}

		for id := range pool {
			meta, ok := idx.Metadata(id)
			if ok && disallowed[fold(meta.Artist)] {
				delete(pool, id)
			}
		}
	}

	if len(req.Mood) > 0 || len(req.Activity) > 0 {
		filtered := filterByMoodActivity(pool, idx, req)
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	return pool
}

func requiredOrRequestedGenres(req *request.PlaylistRequest, strat *strategy.PlaylistStrategy) []string {
	if len(strat.Constraints.RequiredGenres) > 0 {
		return strat.Constraints.RequiredGenres
	}

	return catalogmodel.NormalizeGenres(req.Genres)
}

// filterByMoodActivity keeps tracks whose mapped mood/activity is either
// empty or overlaps the request, per the spec's resolved Open Question: the
// filter only applies (and only narrows) when it leaves something behind.
func filterByMoodActivity(pool map[string]bool, idx *index.MatchingIndex, req *request.PlaylistRequest) map[string]bool {
	wantMood := catalogmodel.MapMood(req.Mood)
	wantActivity := catalogmodel.MapActivity(req.Activity)

	out := make(map[string]bool)

	for id := range pool {
		meta, ok := idx.Metadata(id)
		if !ok {
			continue
		}

		moodOK := len(wantMood) == 0 || len(meta.MappedMood) == 0 || overlaps(wantMood, meta.MappedMood)
		activityOK := len(wantActivity) == 0 || len(meta.MappedActivity) == 0 || overlaps(wantActivity, meta.MappedActivity)

		if moodOK && activityOK {
			out[id] = true
		}
	}

	return out
}

func overlaps(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, x := range a {
		set[x] = true
	}

	for _, y := range b {
		if set[y] {
			return true
		}
	}

	return false
}

func cloneSet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k := range s {
		out[k] = true
	}

	return out
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))

	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}

		seen[s] = true
		out = append(out, s)
	}

	return out
}
