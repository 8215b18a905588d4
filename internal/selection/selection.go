// ABOUTME: The core selection loop: seed suggested tracks, iterate scoring under a length budget, enforce minArtists (spec §4.4)
// ABOUTME: Deterministic given (request, strategy, index, tracks, seed) when no oracle is consulted

package selection

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/index"
	"playlistcraft/internal/oracle"
	"playlistcraft/internal/reason"
	"playlistcraft/internal/request"
	"playlistcraft/internal/scoring"
	"playlistcraft/internal/strategy"
)

// minuteToleranceRatio is the ±5% band around a minute-mode target duration.
const minuteToleranceRatio = 0.05

// TrackSelection is one scored, selected track, per spec §3.
type TrackSelection struct {
	TrackFileID string
	Track       *catalogmodel.Track
	TotalScore  float64
	Reasons     reason.List
	Components  scoring.Components
}

// Result is everything the selection loop produced, handed off to the
// ordering agent and then the engine's summary/playlist assembly.
type Result struct {
	Selections     []TrackSelection
	TargetTracks   int
	TargetDuration int // seconds
	OracleConsumed bool
	OracleErr      error // non-nil only when the oracle was tried and failed; always recovered locally
}

type scoredCandidate struct {
	id     string
	track  *catalogmodel.Track
	meta   catalogmodel.Metadata
	result scoring.Result
}

// Select runs the full candidate-pool-to-final-selection pipeline.
func Select(ctx context.Context, req *request.PlaylistRequest, strat *strategy.PlaylistStrategy, idx *index.MatchingIndex, allTracks []*catalogmodel.Track, seed uint64, refiner oracle.Refiner) (*Result, error) {
	if len(allTracks) == 0 {
		return nil, ErrNoTracksAvailable
	}

	affinity := BuildAffinitySet(req, idx, allTracks)

	pool := BuildCandidatePool(req, strat, idx, affinity)
	if len(pool) == 0 {
		return nil, ErrNoCandidates
	}

	targetTracks, targetDuration := targets(req, idx, pool)

	rng := rand.New(rand.NewPCG(seed, seed))

	affinityCtx := scoring.AffinityContext{Artists: affinity.Artists, Genres: affinity.Genres}

	var selected []TrackSelection

	used := make(map[string]bool)

	currentDuration := 0

	for _, id := range suggestedSeedIDs(req, idx, pool, targetTracks) {
		if used[id] {
			continue
		}

		track := idx.Track(id)
		meta, _ := idx.Metadata(id)

		sc := scoring.Score(track, meta, scoring.Context{
			Request:         req,
			Strategy:        strat,
			Previous:        toPrevious(selected),
			CurrentDuration: currentDuration,
			TargetDuration:  targetDuration,
			RemainingSlots:  remainingSlots(targetTracks, len(selected)),
			Affinity:        affinityCtx,
		})

		selected = append(selected, TrackSelection{TrackFileID: id, Track: track, TotalScore: sc.Total, Reasons: sc.Reasons, Components: sc.Components})
		used[id] = true
		currentDuration += track.DurationOrDefault()
	}

	maxIterations := targetTracks * 2
	if maxIterations < 1000 {
		maxIterations = 1000
	}

	var oracleConsumed bool

	var oracleErr error

	for iter := 0; iter < maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			break
		}

		if targetReached(req, len(selected), targetTracks, currentDuration, targetDuration) {
			break
		}

		remainingIDs := remainingCandidates(pool, used)
		if len(remainingIDs) == 0 {
			break
		}

		scored := scoreCandidates(remainingIDs, idx, req, strat, selected, currentDuration, targetDuration, targetTracks, affinityCtx)

		sort.SliceStable(scored, func(i, j int) bool { return scored[i].result.Total > scored[j].result.Total })

		if iter == 0 && refiner != nil {
			if _, isNoOp := refiner.(oracle.NoOp); !isNoOp {
				oracleConsumed = true
				oracleErr = applyOracleRefinement(ctx, scored, req, selected, refiner)
				sort.SliceStable(scored, func(i, j int) bool { return scored[i].result.Total > scored[j].result.Total })
			}
		}

		windowSize := surpriseWindow(len(scored), req.Surprise)
		pick := scored[rng.IntN(windowSize)]

		selected = append(selected, TrackSelection{TrackFileID: pick.id, Track: pick.track, TotalScore: pick.result.Total, Reasons: pick.result.Reasons, Components: pick.result.Components})
		used[pick.id] = true
		currentDuration += pick.track.DurationOrDefault()

		if req.Length.Type == request.LengthMinutes && currentDuration > int(float64(targetDuration)*(1+minuteToleranceRatio)) {
			currentDuration -= pick.track.DurationOrDefault()
			selected = selected[:len(selected)-1]

			break
		}
	}

	selected = enforceMinArtists(req, strat, idx, pool, used, selected, targetTracks, targetDuration, currentDuration, affinityCtx)

	if req.Length.Type == request.LengthTracks && len(selected) > targetTracks {
		selected = trimToTarget(selected, targetTracks)
	}

	return &Result{
		Selections:     selected,
		TargetTracks:   targetTracks,
		TargetDuration: targetDuration,
		OracleConsumed: oracleConsumed,
		OracleErr:      oracleErr,
	}, nil
}

func targets(req *request.PlaylistRequest, idx *index.MatchingIndex, pool map[string]bool) (int, int) {
	avg := averageDuration(idx, pool)
	targetTracks := strategy.TargetTracks(req, avg)

	var targetDuration int
	if req.Length.Type == request.LengthMinutes {
		targetDuration = req.Length.Value * 60
	} else {
		targetDuration = int(float64(targetTracks) * avg)
	}

	if req.EnableDiscovery {
		targetTracks = maxInt(1, targetTracks/2)
		targetDuration = maxInt(1, targetDuration/2)
	}

	return targetTracks, targetDuration
}

func averageDuration(idx *index.MatchingIndex, pool map[string]bool) float64 {
	if len(pool) == 0 {
		return catalogmodel.DefaultDurationSeconds
	}

	total := 0
	for id := range pool {
		total += idx.Track(id).DurationOrDefault()
	}

	return float64(total) / float64(len(pool))
}

func remainingSlots(targetTracks, selectedSoFar int) int {
	r := targetTracks - selectedSoFar
	if r < 1 {
		return 1
	}

	return r
}

func targetReached(req *request.PlaylistRequest, selectedCount, targetTracks, currentDuration, targetDuration int) bool {
	if req.Length.Type == request.LengthTracks {
		return selectedCount >= targetTracks
	}

	lower := float64(targetDuration) * (1 - minuteToleranceRatio)
	upper := float64(targetDuration) * (1 + minuteToleranceRatio)

	return float64(currentDuration) >= lower && float64(currentDuration) <= upper
}

func remainingCandidates(pool map[string]bool, used map[string]bool) []string {
	out := make([]string, 0, len(pool))

	for id := range pool {
		if !used[id] {
			out = append(out, id)
		}
	}

	sort.Strings(out) // deterministic iteration order before scoring/sort

	return out
}

func scoreCandidates(ids []string, idx *index.MatchingIndex, req *request.PlaylistRequest, strat *strategy.PlaylistStrategy, selected []TrackSelection, currentDuration, targetDuration, targetTracks int, affinityCtx scoring.AffinityContext) []scoredCandidate {
	out := make([]scoredCandidate, 0, len(ids))
	previous := toPrevious(selected)

	for _, id := range ids {
		track := idx.Track(id)
		meta, _ := idx.Metadata(id)

		result := scoring.Score(track, meta, scoring.Context{
			Request:         req,
			Strategy:        strat,
			Previous:        previous,
			CurrentDuration: currentDuration,
			TargetDuration:  targetDuration,
			RemainingSlots:  remainingSlots(targetTracks, len(selected)),
			Affinity:        affinityCtx,
		})

		out = append(out, scoredCandidate{id: id, track: track, meta: meta, result: result})
	}

	return out
}

func surpriseWindow(n int, surprise float64) int {
	w := int(math.Floor(float64(n) * (1 - surprise*0.5)))
	if w < 1 {
		w = 1
	}

	if w > 10 {
		w = 10
	}

	if w > n {
		w = n
	}

	return w
}

func toPrevious(selected []TrackSelection) []scoring.Previous {
	out := make([]scoring.Previous, len(selected))

	for i, s := range selected {
		meta := catalogmodel.Derive(s.Track)
		out[i] = scoring.Previous{
			TrackFileID:      s.TrackFileID,
			Artist:           s.Track.Artist,
			Album:            s.Track.Album,
			NormalizedGenres: meta.NormalizedGenres,
		}
	}

	return out
}

// suggestedSeedIDs returns, in a deterministic order, the pool tracks that
// match suggestedArtists/Albums/Tracks, capped per spec §4.4's seeding rule.
func suggestedSeedIDs(req *request.PlaylistRequest, idx *index.MatchingIndex, pool map[string]bool, targetTracks int) []string {
	if len(req.SuggestedArtists) == 0 && len(req.SuggestedAlbums) == 0 && len(req.SuggestedTracks) == 0 {
		return nil
	}

	limit := int(float64(targetTracks) * 0.4)
	if req.Length.Type == request.LengthMinutes {
		limit = 15
	}

	if limit < 1 {
		limit = 1
	}

	artists := foldSet(req.SuggestedArtists)
	albums := foldSet(req.SuggestedAlbums)
	tracks := foldSet(req.SuggestedTracks)

	ids := make([]string, 0, len(pool))
	for id := range pool {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	var matched []string

	for _, id := range ids {
		t := idx.Track(id)
		if t == nil {
			continue
		}

		if artists[fold(t.Artist)] || albums[fold(t.Album)] || tracks[fold(t.Title)] {
			matched = append(matched, id)
		}

		if len(matched) >= limit {
			break
		}
	}

	return matched
}

func foldSet(in []string) map[string]bool {
	out := make(map[string]bool, len(in))
	for _, s := range in {
		out[fold(s)] = true
	}

	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
