// Package provider talks to the external results feed. The engine never
// polls on its own; the poller service decides when to call this client
// based on the escalation times.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MatchData is one raw result row as delivered by the feed. Team ids are
// the provider's own; goal values may be missing for phases not yet played.
type MatchData struct {
	Team1ExternalID string `json:"team1_external_id"`
	Team2ExternalID string `json:"team2_external_id"`
	GoalNormal1     *int   `json:"goal_normal1"`
	GoalNormal2     *int   `json:"goal_normal2"`
	GoalExtra1      *int   `json:"goal_extra1"`
	GoalExtra2      *int   `json:"goal_extra2"`
	GoalPenalty1    *int   `json:"goal_penalty1"`
	GoalPenalty2    *int   `json:"goal_penalty2"`
}

// ResultsProvider is the boundary the engine sees; retry and backoff on a
// flaky feed belong to the implementation, not to the callers.
type ResultsProvider interface {
	FetchResults(ctx context.Context, tournamentID int) ([]MatchData, error)
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) FetchResults(ctx context.Context, tournamentID int) ([]MatchData, error) {
	url := fmt.Sprintf("%s/tournaments/%d/results", c.baseURL, tournamentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build results request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("results request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("results provider returned status %d for tournament %d", resp.StatusCode, tournamentID)
	}

	var results []MatchData
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode results payload: %w", err)
	}
	return results, nil
}
