// ABOUTME: HTTP-transport Refiner backed by resty, for an LLM-style JSON completion endpoint
// ABOUTME: Grounded on kirbs-btw-spotify-playlist-dataset's resty client-credentials pattern

package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient implements Refiner against a single completion endpoint that
// accepts {"prompt": "..."} and returns {"response": "<json string>"}.
type HTTPClient struct {
	client   *resty.Client
	endpoint string
}

// NewHTTPClient builds a Refiner talking to endpoint with apiKey bearer auth
// and the given per-call timeout.
func NewHTTPClient(endpoint, apiKey string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetAuthToken(apiKey).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &HTTPClient{client: client, endpoint: endpoint}
}

type completionRequest struct {
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Response string `json:"response"`
}

func (h *HTTPClient) complete(ctx context.Context, prompt string) (string, error) {
	var out completionResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(completionRequest{Prompt: prompt}).
		SetResult(&out).
		Post(h.endpoint)
	if err != nil {
		return "", fmt.Errorf("oracle request failed: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("oracle returned status %d", resp.StatusCode())
	}

	return out.Response, nil
}

// RequestStrategy implements Refiner.
func (h *HTTPClient) RequestStrategy(ctx context.Context, prompt string) (string, error) {
	return h.complete(ctx, prompt)
}

// RequestTrackRefinement implements Refiner.
func (h *HTTPClient) RequestTrackRefinement(ctx context.Context, prompt string) (string, error) {
	return h.complete(ctx, prompt)
}

// NoOp is a Refiner that always fails fast, for callers who want fully
// deterministic runs without threading nil checks everywhere.
type NoOp struct{}

func (NoOp) RequestStrategy(context.Context, string) (string, error) {
	return "", fmt.Errorf("no refiner configured")
}

func (NoOp) RequestTrackRefinement(context.Context, string) (string, error) {
	return "", fmt.Errorf("no refiner configured")
}
