// README: HTTP client for the optimizer's candidate feed.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	http     *http.Client
	endpoint string
}

func NewClient(endpoint string) *Client {
	return &Client{
		http:     &http.Client{Timeout: 10 * time.Second},
		endpoint: endpoint,
	}
}

// FetchCandidates pulls the current batch of proposed trips.
func (c *Client) FetchCandidates(ctx context.Context) ([]Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("optimizer fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("optimizer fetch: unexpected status %d", resp.StatusCode)
	}
	var payload struct {
		Candidates []Candidate `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("optimizer fetch: decode: %w", err)
	}
	return payload.Candidates, nil
}
