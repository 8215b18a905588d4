// ABOUTME: Deterministic seed derivation from a request when the caller supplies none (spec §4.4, SPEC_FULL §E)
// ABOUTME: Every PRNG draw in a generation flows from one *rand.Rand built off this seed; the oracle is the only other entropy source

package selection

import (
	"fmt"
	"hash/fnv"

	"playlistcraft/internal/request"
)

// DeriveSeed returns req.Seed if set, else an fnv-1a hash over a
// deterministically-ordered dump of the request's fields.
func DeriveSeed(req *request.PlaylistRequest) uint64 {
	if req.Seed != nil {
		return *req.Seed
	}

	minArtists := "nil"
	if req.MinArtists != nil {
		minArtists = fmt.Sprintf("%d", *req.MinArtists)
	}

	bpmRange := "nil"
	if req.Tempo.BPMRange != nil {
		bpmRange = fmt.Sprintf("%v-%v", req.Tempo.BPMRange.Min, req.Tempo.BPMRange.Max)
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "genres=%v|mood=%v|activity=%v|tempoBucket=%v|tempoBPMRange=%s|length=%+v|surprise=%v|minArtists=%s|suggestedArtists=%v|suggestedAlbums=%v|suggestedTracks=%v|disallowedArtists=%v|discovery=%v|instructions=%s",
		req.Genres, req.Mood, req.Activity, req.Tempo.Bucket, bpmRange, req.Length, req.Surprise, minArtists,
		req.SuggestedArtists, req.SuggestedAlbums, req.SuggestedTracks, req.DisallowedArtists,
		req.EnableDiscovery, req.LLMAdditionalInstructions)

	return h.Sum64()
}
