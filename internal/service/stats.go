package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jtcarver/hoopsight/internal/api/presto"
	"github.com/jtcarver/hoopsight/internal/models"
	"github.com/jtcarver/hoopsight/internal/repository/memory"
	"github.com/jtcarver/hoopsight/internal/stats"
)

type StatsService struct {
	api      *presto.API
	repo     *memory.Repository
	sources  []models.TeamSource
	cacheTTL time.Duration
	adjust   stats.AdjustConfig
}

func NewStatsService(api *presto.API, repo *memory.Repository, sources []models.TeamSource, cacheTTL time.Duration, adjust stats.AdjustConfig) *StatsService {
	return &StatsService{
		api:      api,
		repo:     repo,
		sources:  sources,
		cacheTTL: cacheTTL,
		adjust:   adjust,
	}
}

// SplitName names a filter combination for cache keys and API responses,
// e.g. "overall", "conference", "conference-wins", "home-march".
func SplitName(f stats.Filters) string {
	var parts []string
	for _, p := range []string{f.Competition, f.Location, f.WinLoss, f.Month} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "overall"
	}
	return strings.Join(parts, "-")
}

// GetSnapshot returns the league view for a split, recomputing it from
// fresh feeds when the cached copy is older than the cache TTL.
func (s *StatsService) GetSnapshot(ctx context.Context, filters stats.Filters) (*models.StatsSnapshot, error) {
	key := SplitName(filters)
	if snapshot := s.repo.GetSnapshot(key); snapshot != nil && time.Since(snapshot.LastUpdated) <= s.cacheTTL {
		return snapshot, nil
	}

	snapshot, err := s.computeSnapshot(ctx, filters)
	if err != nil {
		return nil, err
	}
	s.repo.SaveSnapshot(key, snapshot)
	return snapshot, nil
}

// Refresh recomputes the commonly requested splits regardless of cache age.
// The background scheduler calls this so interactive requests mostly hit a
// warm cache.
func (s *StatsService) Refresh(ctx context.Context) error {
	for _, filters := range []stats.Filters{{}, {Competition: "conference"}} {
		snapshot, err := s.computeSnapshot(ctx, filters)
		if err != nil {
			return fmt.Errorf("refreshing %s split: %w", SplitName(filters), err)
		}
		s.repo.SaveSnapshot(SplitName(filters), snapshot)
	}
	return nil
}

// FindTeam locates one team's metrics in a split by approximate name,
// tolerating the misspellings users type into the URL.
func (s *StatsService) FindTeam(ctx context.Context, name string, filters stats.Filters) (*models.TeamMetrics, error) {
	snapshot, err := s.GetSnapshot(ctx, filters)
	if err != nil {
		return nil, err
	}

	var best *models.TeamMetrics
	bestScore := -1.0
	threshold := 0.6

	for i, team := range snapshot.Teams {
		distance := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(team.TeamName))
		maxLen := float64(max(len(name), len(team.TeamName)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > threshold && similarity > bestScore {
			bestScore = similarity
			best = &snapshot.Teams[i]
		}
	}

	if best == nil {
		return nil, fmt.Errorf("team not found: %s", name)
	}
	return best, nil
}

// computeSnapshot runs the whole pipeline for one split: fetch every feed,
// filter and aggregate each team's events, derive metrics, then adjust
// ratings across the league.
func (s *StatsService) computeSnapshot(ctx context.Context, filters stats.Filters) (*models.StatsSnapshot, error) {
	results := s.api.FetchAllTeams(ctx, s.sources)

	teamNames := make([]string, 0, len(results))
	for _, res := range results {
		teamNames = append(teamNames, canonicalName(res))
	}
	resolver := stats.NewOpponentResolver(teamNames)

	snapshot := &models.StatsSnapshot{
		Split:       SplitName(filters),
		LastUpdated: time.Now(),
	}

	opponents := make(map[string][]string)
	for _, res := range results {
		if !res.Success || res.Data == nil {
			snapshot.FailedFetches = append(snapshot.FailedFetches, res.Name)
			continue
		}

		name := canonicalName(res)
		filtered := stats.FilterEvents(res.Data.Events, filters, name)
		aggregate := stats.AggregateStats(filtered, name)

		if aggregate == nil {
			// No countable games for this split. Feeds without an event
			// log can still contribute through their pre-computed split
			// figures; everything else drops out of this snapshot.
			if metrics, ok := s.metricsFromProviderSplit(res.Data, name, filters); ok {
				snapshot.Teams = append(snapshot.Teams, metrics)
			}
			continue
		}

		metrics := stats.CalculateAdvancedFromStats(aggregate)
		opps, unresolved := resolver.OpponentNames(filtered)
		opponents[name] = opps
		snapshot.UnresolvedOpponents += unresolved
		snapshot.Teams = append(snapshot.Teams, metrics)
	}

	if len(snapshot.Teams) == 0 && len(snapshot.FailedFetches) == len(results) {
		return nil, fmt.Errorf("no team data available: all %d fetches failed", len(results))
	}

	snapshot.Ratings = stats.AdjustRatings(snapshot.Teams, opponents, s.adjust)

	if snapshot.UnresolvedOpponents > 0 {
		slog.Warn("Dropped unresolvable opponents from schedule adjustment",
			"split", snapshot.Split, "count", snapshot.UnresolvedOpponents)
	}

	return snapshot, nil
}

// metricsFromProviderSplit is the calculator's second call path: a feed with
// no event log but a pre-computed line for the requested competition split
// (or the overall line when no filters are set). Location, month, and
// win/loss filters have no provider-side equivalent, so those splits can
// only come from events.
func (s *StatsService) metricsFromProviderSplit(data *models.TeamData, name string, filters stats.Filters) (models.TeamMetrics, bool) {
	if len(data.Events) > 0 || len(data.Splits) == 0 {
		return models.TeamMetrics{}, false
	}
	if filters.Location != "" || filters.WinLoss != "" || filters.Month != "" {
		return models.TeamMetrics{}, false
	}

	splitKey := filters.Competition
	if splitKey == "" {
		splitKey = "overall"
	}
	line, ok := data.Splits[splitKey]
	if !ok || len(line) == 0 {
		return models.TeamMetrics{}, false
	}

	return stats.CalculateAdvanced(name, stats.FieldsFromStatLine(line)), true
}

// canonicalName prefers the school name the feed itself declares, since
// that is what appears in result winner and opponent fields, falling back
// to the configured display name.
func canonicalName(res models.TeamFetchResult) string {
	if res.Data != nil && res.Data.Attributes.SchoolName != "" {
		return res.Data.Attributes.SchoolName
	}
	return res.Name
}
