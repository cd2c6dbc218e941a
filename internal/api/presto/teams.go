package presto

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jtcarver/hoopsight/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// FetchTeam retrieves one team's full data feed.
func (a *API) FetchTeam(ctx context.Context, src models.TeamSource) (*models.TeamData, error) {
	var data models.TeamData
	if err := a.client.GetJSON(ctx, src.URL, &data); err != nil {
		return nil, fmt.Errorf("fetching team %s: %w", src.Name, err)
	}
	return &data, nil
}

// FetchAllTeams retrieves every configured team's feed concurrently.
// Individual failures are tolerated: the failed team is returned with
// Success=false and the rest of the league proceeds without it.
func (a *API) FetchAllTeams(ctx context.Context, sources []models.TeamSource) []models.TeamFetchResult {
	slog.Info("Fetching team data", "teams", len(sources))

	results := make([]models.TeamFetchResult, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src models.TeamSource) {
			defer wg.Done()
			result := models.TeamFetchResult{Name: src.Name, Conference: src.Conference}
			data, err := a.FetchTeam(ctx, src)
			if err != nil {
				slog.Error("Failed to fetch team", "team", src.Name, "error", err)
				result.Err = err
			} else {
				result.Data = data
				result.Success = true
			}
			results[i] = result
		}(i, src)
	}
	wg.Wait()

	return results
}
