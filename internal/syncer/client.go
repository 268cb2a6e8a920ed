// Package syncer keeps the tracker usable offline: a versioned response
// cache with fetch strategies, a durable replay queue for mutations that
// happened while the remote API was unreachable, and a thin client for
// that API.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mahavak/rhonda/internal/models"
)

// Client calls the remote tracking API. The API is opaque to the rest of
// the app; only the syncer talks to it.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// RemoteStats is the server's 30-day rollup.
type RemoteStats struct {
	SupplementsTracked30Days int     `json:"supplements_tracked_30_days"`
	SaunaSessions30Days      int     `json:"sauna_sessions_30_days"`
	AverageSaunaDuration     float64 `json:"average_sauna_duration"`
}

// TrackSupplement pushes one supplement event to the server.
func (c *Client) TrackSupplement(ctx context.Context, event models.SupplementEvent) error {
	return c.post(ctx, "track-supplement", event)
}

// TrackSauna pushes one sauna event to the server.
func (c *Client) TrackSauna(ctx context.Context, event models.SaunaEvent) error {
	return c.post(ctx, "track-sauna", event)
}

// Post replays a raw queued payload against the named action.
func (c *Client) Post(ctx context.Context, action string, payload json.RawMessage) error {
	return c.post(ctx, action, payload)
}

// DecodeStats parses a stats response body, whether it arrived fresh or
// out of the offline cache.
func DecodeStats(body []byte) (RemoteStats, error) {
	var stats RemoteStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return RemoteStats{}, fmt.Errorf("failed to decode stats: %w", err)
	}
	return stats, nil
}

func (c *Client) post(ctx context.Context, action string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ActionURL(action), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s request failed with status %d", action, resp.StatusCode)
	}
	return nil
}

// ActionURL builds the URL for a named action. Read actions are fetched
// through the offline Handler against these URLs; mutations post to them
// directly.
func (c *Client) ActionURL(action string) string {
	return fmt.Sprintf("%s?action=%s", c.baseURL, action)
}
