package presto

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Client fetches team data feeds over HTTP. All requests run through a
// circuit breaker so a provider outage stops burning requests quickly
// instead of timing out once per team per refresh.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(timeout time.Duration) *Client {
	settings := gobreaker.Settings{
		Name:    "presto",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Info("Circuit breaker state changed", "service", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
	}
}

// GetJSON fetches url and decodes the response body into result.
func (c *Client) GetJSON(ctx context.Context, url string, result any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("error creating request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("error making request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code %d fetching %s", resp.StatusCode, url)
		}

		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return nil, fmt.Errorf("error decoding response: %w", err)
		}

		return nil, nil
	})
	return err
}
