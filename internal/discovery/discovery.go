// ABOUTME: Discovery-track collaborator interface and the interleave logic that splices external suggestions into an ordered playlist (spec §4.6, §6)
// ABOUTME: Calls are sequential, deduped by stable id, and any per-track failure is recovered locally per spec §7's DiscoveryFailure category

package discovery

import (
	"context"
	"fmt"
	"log"
	"time"

	"playlistcraft/internal/catalogmodel"
	"playlistcraft/internal/ordering"
	"playlistcraft/internal/reason"
	"playlistcraft/internal/request"
	"playlistcraft/internal/strategy"
)

// DefaultPerTrackTimeout is the per-call timeout for a discovery lookup,
// per spec §5.
const DefaultPerTrackTimeout = 20 * time.Second

// Candidate is one externally-suggested, not-in-library track.
type Candidate struct {
	ID              string // stable id, collaborator-assigned
	Title           string
	Artist          string
	Album           string
	Genres          []string
	DurationSeconds *int
	Score           float64
}

// Collaborator is the external "discovery" capability of spec §6.
type Collaborator interface {
	FindDiscoveryTracks(ctx context.Context, libraryTrack *catalogmodel.Track, req *request.PlaylistRequest, strat *strategy.PlaylistStrategy, excludeIDs map[string]bool) ([]Candidate, error)
	GenerateExplanation(ctx context.Context, candidate Candidate, libraryTrack *catalogmodel.Track, req *request.PlaylistRequest) (string, error)
}

const fixedDiscoveryTransitionScore = 0.8

// PlaylistEntry is one final-order slot: either a library track (IsDiscovery
// false, Track set) or a synthetic discovery entry (IsDiscovery true,
// Candidate set) inserted immediately after the library track that inspired
// it, per spec §4.6.
type PlaylistEntry struct {
	TrackFileID     string
	IsDiscovery     bool
	Track           *catalogmodel.Track // nil when IsDiscovery
	Candidate       Candidate           // zero value when !IsDiscovery
	Explanation     string              // discovery entries only
	Section         strategy.SectionName
	TransitionScore float64
	Reasons         reason.List // empty for discovery entries
}

// Interleave walks the ordered library-track sequence and, for each track
// that produced a discovery match, inserts a synthetic entry right after it.
// Already-used discovery ids are deduped across the whole generation. Every
// recovered per-track failure is logged once and also returned so a caller
// can surface it as a diagnostic, per §7's propagation policy.
func Interleave(ctx context.Context, ordered []ordering.OrderedTrack, req *request.PlaylistRequest, strat *strategy.PlaylistStrategy, collab Collaborator) ([]PlaylistEntry, []error) {
	out := make([]PlaylistEntry, 0, len(ordered))

	if collab == nil || !req.EnableDiscovery {
		for _, o := range ordered {
			out = append(out, PlaylistEntry{TrackFileID: o.TrackFileID, Track: o.Track, Section: o.Section, TransitionScore: o.TransitionScore, Reasons: o.Reasons})
		}

		return out, nil
	}

	used := make(map[string]bool)

	var errs []error

	for _, o := range ordered {
		out = append(out, PlaylistEntry{TrackFileID: o.TrackFileID, Track: o.Track, Section: o.Section, TransitionScore: o.TransitionScore, Reasons: o.Reasons})

		callCtx, cancel := context.WithTimeout(ctx, DefaultPerTrackTimeout)
		candidates, err := collab.FindDiscoveryTracks(callCtx, o.Track, req, strat, used)
		cancel()

		if err != nil {
			log.Printf("discovery: lookup failed for %q, skipping: %v", o.Track.Title, err)
			errs = append(errs, fmt.Errorf("discovery lookup for %q: %w", o.Track.Title, err))

			continue
		}

		var picked *Candidate

		for i := range candidates {
			if !used[candidates[i].ID] {
				picked = &candidates[i]

				break
			}
		}

		if picked == nil {
			continue
		}

		used[picked.ID] = true

		explanation := fallbackExplanation(*picked, o.Track)

		explainCtx, explainCancel := context.WithTimeout(ctx, DefaultPerTrackTimeout)

		if generated, err := collab.GenerateExplanation(explainCtx, *picked, o.Track, req); err == nil && generated != "" {
			explanation = generated
		} else if err != nil {
			log.Printf("discovery: explanation generation failed for %q, using fallback: %v", picked.Title, err)
			errs = append(errs, fmt.Errorf("discovery explanation for %q: %w", picked.Title, err))
		}

		explainCancel()

		out = append(out, PlaylistEntry{
			TrackFileID:     "discovery:" + picked.ID,
			IsDiscovery:     true,
			Candidate:       *picked,
			Explanation:     explanation,
			Section:         o.Section,
			TransitionScore: fixedDiscoveryTransitionScore,
		})
	}

	return out, errs
}

func fallbackExplanation(c Candidate, inspiring *catalogmodel.Track) string {
	return fmt.Sprintf("Because you liked %q by %s", inspiring.Title, inspiring.Artist)
}
