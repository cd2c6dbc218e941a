package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jtcarver/hoopsight/internal/service"
	"github.com/jtcarver/hoopsight/internal/stats"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats returns every team's aggregated and derived metrics for the
// split selected by the query parameters.
func (h *StatsHandler) GetStats(c *gin.Context) {
	filters := filtersFromQuery(c)

	snapshot, err := h.statsService.GetSnapshot(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"split":               snapshot.Split,
		"lastUpdated":         snapshot.LastUpdated,
		"data":                snapshot.Teams,
		"failedFetches":       snapshot.FailedFetches,
		"unresolvedOpponents": snapshot.UnresolvedOpponents,
	})
}

// GetRatings returns the schedule-adjusted rating lines for the split.
func (h *StatsHandler) GetRatings(c *gin.Context) {
	filters := filtersFromQuery(c)

	snapshot, err := h.statsService.GetSnapshot(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"split":       snapshot.Split,
		"lastUpdated": snapshot.LastUpdated,
		"data":        snapshot.Ratings,
	})
}

// GetTeam returns one team's metrics, matched by approximate name.
func (h *StatsHandler) GetTeam(c *gin.Context) {
	filters := filtersFromQuery(c)

	team, err := h.statsService.FindTeam(c.Request.Context(), c.Param("name"), filters)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"split":   service.SplitName(filters),
		"data":    team,
	})
}

func filtersFromQuery(c *gin.Context) stats.Filters {
	return stats.Filters{
		Location:    strings.ToLower(c.Query("location")),
		Competition: strings.ToLower(c.Query("competition")),
		WinLoss:     strings.ToLower(c.Query("winloss")),
		Month:       strings.ToLower(c.Query("month")),
	}
}
