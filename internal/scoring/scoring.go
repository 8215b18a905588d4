// ABOUTME: Shared types for the scoring kernel: per-call context, component scores, and previously-selected track shape
// ABOUTME: Each component scorer in this package is a pure function of (track metadata, request, strategy, context)

package scoring

import (
	"strings"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/reason"
	"playlistcraft/internal/request"
	"playlistcraft/internal/strategy"
)

// Previous is the compact view of an already-selected track that later
// scoring passes (diversity, surprise, ordering) need.
type Previous struct {
	TrackFileID      string
	Artist           string
	Album            string
	NormalizedGenres []string
}

// AffinityContext is the derived set of related artists/genres used for the
// small additive affinity bonus (§4.3, §Glossary).
type AffinityContext struct {
	Artists map[string]bool
	Genres  map[string]bool
}

// Context bundles everything a scoring pass needs beyond the single track.
type Context struct {
	Request           *request.PlaylistRequest
	Strategy          *strategy.PlaylistStrategy
	Previous          []Previous
	CurrentDuration   int
	TargetDuration     int
	RemainingSlots    int
	Affinity          AffinityContext
}

// Components holds every component score in [0,1] (except where §4.3 allows
// bonuses to exceed 1) for debugging and for the final TrackSelection.
type Components struct {
	GenreMatch    float64
	TempoMatch    float64
	MoodMatch     float64
	ActivityMatch float64
	DurationFit   float64
	Diversity     float64
	Surprise      float64
	Instruction   float64
	Suggestion    float64
	Affinity      float64
}

// Result is one fully-scored candidate.
type Result struct {
	Components Components
	Reasons    reason.List
	Total      float64
}

// fixedDurationFitWeight is applied to DurationFit regardless of the
// strategy's scoring weights, per spec §4.3.
const fixedDurationFitWeight = 0.15

// fixedInstructionWeight is applied to the instruction-match component when
// an additional-instructions hint is present.
const fixedInstructionWeight = 0.1

// affinityBonusCap bounds the additive affinity bonus, per §4.3.
const affinityBonusCap = 0.15

// Score computes every component for one candidate track and aggregates
// them into a Result, per spec §4.3. It is a pure function: no shared
// mutable state, no randomness, no suspension.
func Score(track *catalogmodel.Track, meta catalogmodel.Metadata, ctx Context) Result {
	var all reason.List

	genreMatch, r := genreScore(meta, ctx.Request.Genres, ctx.Strategy.Constraints.RequiredGenres)
	all = append(all, r...)

	tempoMatch, r := tempoScore(track, meta, ctx.Request.Tempo, ctx.Strategy.TempoGuidance)
	all = append(all, r...)

	moodMatch, r := moodScore(catalogmodel.MapMood(ctx.Request.Mood), meta.MappedMood)
	all = append(all, r...)

	activityMatch, r := activityScore(catalogmodel.MapActivity(ctx.Request.Activity), meta.MappedActivity)
	all = append(all, r...)

	durationFit, r := durationFitScore(track.DurationOrDefault(), ctx.CurrentDuration, ctx.TargetDuration, ctx.RemainingSlots)
	all = append(all, r...)

	diversity, r := diversityScore(track.Artist, track.Album, meta.NormalizedGenres, ctx.Previous, ctx.Strategy.DiversityRules)
	all = append(all, r...)

	artistsInRequestedGenres := artistsMatchingGenres(ctx.Previous, catalogmodel.NormalizeGenres(ctx.Request.Genres))
	surprise, r := surpriseScore(ctx.Request.Surprise, track.Artist, meta.NormalizedGenres, catalogmodel.NormalizeGenres(ctx.Request.Genres), artistsInRequestedGenres, ctx.Previous)
	all = append(all, r...)

	var instruction float64
	if ctx.Request.LLMAdditionalInstructions != "" {
		instruction, r = instructionScore(ctx.Request.LLMAdditionalInstructions, track)
		all = append(all, r...)
	}

	suggestion, r := suggestionBonus(track, ctx.Request)
	all = append(all, r...)

	affinity, r := affinityBonus(track, meta, ctx.Affinity)
	all = append(all, r...)

	weights := ctx.Strategy.ScoringWeights
	total := genreMatch*weights.GenreMatch +
		tempoMatch*weights.TempoMatch +
		moodMatch*weights.MoodMatch +
		activityMatch*weights.ActivityMatch +
		diversity*weights.Diversity +
		durationFit*fixedDurationFitWeight +
		suggestion + affinity +
		surprise*surprise*0.1 +
		instruction*fixedInstructionWeight

	return Result{
		Components: Components{
			GenreMatch:    genreMatch,
			TempoMatch:    tempoMatch,
			MoodMatch:     moodMatch,
			ActivityMatch: activityMatch,
			DurationFit:   durationFit,
			Diversity:     diversity,
			Surprise:      surprise,
			Instruction:   instruction,
			Suggestion:    suggestion,
			Affinity:      affinity,
		},
		Reasons: all,
		Total:   total,
	}
}

func artistsMatchingGenres(previous []Previous, requestedGenres []string) map[string]bool {
	out := make(map[string]bool)

	if len(requestedGenres) == 0 {
		return out
	}

	for _, p := range previous {
		for _, g := range p.NormalizedGenres {
			if containsGenre(requestedGenres, g) {
				out[p.Artist] = true

				break
			}
		}
	}

	return out
}

// suggestionBonus implements the additive suggestion bonuses of §4.3: these
// may push the total above 1 and are intentionally uncapped.
func suggestionBonus(track *catalogmodel.Track, req *request.PlaylistRequest) (float64, reason.List) {
	var score float64

	var reasons reason.List

	if containsFold(req.SuggestedArtists, track.Artist) {
		score += 0.3
		reasons = reasons.With(reason.Reason{Kind: reason.KindAffinity, Explanation: "You suggested this artist", Score: 0.3})
	}

	if containsFold(req.SuggestedAlbums, track.Album) {
		score += 0.3
		reasons = reasons.With(reason.Reason{Kind: reason.KindAffinity, Explanation: "You suggested this album", Score: 0.3})
	}

	if containsFold(req.SuggestedTracks, track.Title) {
		score += 0.5
		reasons = reasons.With(reason.Reason{Kind: reason.KindAffinity, Explanation: "You suggested this track", Score: 0.5})
	}

	return score, reasons
}

// affinityBonus implements the bounded affinity bonus of §4.3: artist match
// +0.1, genre match +0.05, capped at affinityBonusCap in total.
func affinityBonus(track *catalogmodel.Track, meta catalogmodel.Metadata, ctx AffinityContext) (float64, reason.List) {
	var score float64

	var reasons reason.List

	if ctx.Artists[foldKey(track.Artist)] {
		score += 0.1
		reasons = reasons.With(reason.Reason{Kind: reason.KindAffinity, Explanation: "Related to your suggested artists", Score: 0.1})
	}

	for _, g := range meta.NormalizedGenres {
		if ctx.Genres[g] {
			score += 0.05
			reasons = reasons.With(reason.Reason{Kind: reason.KindAffinity, Explanation: "Shares genre with your affinity set", Score: 0.05})

			break
		}
	}

	if score > affinityBonusCap {
		score = affinityBonusCap
	}

	return score, reasons
}

func containsFold(haystack []string, needle string) bool {
	if needle == "" {
		return false
	}

	for _, h := range haystack {
		if foldKey(h) == foldKey(needle) {
			return true
		}
	}

	return false
}

func foldKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
