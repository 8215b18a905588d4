// ABOUTME: Single-shot oracle track refinement blended into the first loop iteration (spec §4.4, §6)
// ABOUTME: Any transport/parse/mapping failure is recovered locally; the caller always has the unblended algorithmic scores to fall back on

package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"playlistcraft/internal/oracle"
	"playlistcraft/internal/request"
)

const (
	oracleTopN             = 25
	algorithmicBlendWeight = 0.7
	refinedBlendWeight     = 0.3
)

// applyOracleRefinement submits the top oracleTopN candidates to the
// refiner, blends any successfully-parsed refined score into each
// candidate's total, and returns a non-nil error only for diagnostics; it
// never mutates control flow on failure.
func applyOracleRefinement(ctx context.Context, scored []scoredCandidate, req *request.PlaylistRequest, selected []TrackSelection, refiner oracle.Refiner) error {
	n := len(scored)
	if n > oracleTopN {
		n = oracleTopN
	}

	top := scored[:n]

	prompt, err := buildRefinementPrompt(req, selected, top)
	if err != nil {
		log.Printf("selection: oracle refinement skipped, building prompt: %v", err)

		return fmt.Errorf("building refinement prompt: %w", err)
	}

	raw, err := refiner.RequestTrackRefinement(ctx, prompt)
	if err != nil {
		log.Printf("selection: oracle refinement skipped, request failed: %v", err)

		return fmt.Errorf("oracle refinement request: %w", err)
	}

	parsed, err := oracle.ParseRefinement(raw)
	if err != nil {
		log.Printf("selection: oracle refinement skipped, schema violation: %v", err)

		return fmt.Errorf("oracle refinement parse: %w", err)
	}

	for _, rt := range parsed.Tracks {
		idx, ok := indexFromOneBased(rt.TrackFileID, n)
		if !ok {
			continue
		}

		top[idx].result.Total = algorithmicBlendWeight*top[idx].result.Total + refinedBlendWeight*rt.RefinedScore
	}

	return nil
}

type refinementPromptCandidate struct {
	Index  int      `json:"index"`
	Title  string   `json:"title"`
	Artist string   `json:"artist"`
	Genres []string `json:"genres"`
}

func buildRefinementPrompt(req *request.PlaylistRequest, selected []TrackSelection, top []scoredCandidate) (string, error) {
	candidates := make([]refinementPromptCandidate, len(top))
	for i, c := range top {
		candidates[i] = refinementPromptCandidate{Index: i + 1, Title: c.track.Title, Artist: c.track.Artist, Genres: c.track.Genres}
	}

	previousTitles := make([]string, len(selected))
	for i, s := range selected {
		previousTitles[i] = s.Track.Title
	}

	payload := struct {
		Request    *request.PlaylistRequest   `json:"request"`
		Previous   []string                   `json:"previouslySelected"`
		Candidates []refinementPromptCandidate `json:"candidates"`
	}{Request: req, Previous: previousTitles, Candidates: candidates}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// indexFromOneBased parses the refiner's 1-based trackFileId back into a
// zero-based slice index, per spec §6.
func indexFromOneBased(trackFileID string, n int) (int, bool) {
	var i int

	if _, err := fmt.Sscanf(trackFileID, "%d", &i); err != nil {
		return 0, false
	}

	if i < 1 || i > n {
		return 0, false
	}

	return i - 1, true
}
