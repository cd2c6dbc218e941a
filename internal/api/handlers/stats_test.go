package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtcarver/hoopsight/internal/api/presto"
	"github.com/jtcarver/hoopsight/internal/models"
	"github.com/jtcarver/hoopsight/internal/repository/memory"
	"github.com/jtcarver/hoopsight/internal/service"
	"github.com/jtcarver/hoopsight/internal/stats"
)

const wildcatsFeed = `{
	"attributes": {"school_name": "Wildcats"},
	"events": [{
		"event": {
			"date": "2026-01-10",
			"home": true,
			"conference": true,
			"opponent": {"name": "Badgers"},
			"result": {"winner": {"name": "Wildcats"}}
		},
		"stats": {
			"pts": "70", "ptsopp": "60",
			"fgp": "27-60", "fgpopp": "22-55",
			"ftp": "10-14",
			"oreb": "10", "orebopp": "8",
			"to": "12", "toopp": "14"
		}
	}]
}`

func newTestRouter(t *testing.T, upstream http.Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	sources := []models.TeamSource{{Name: "Wildcats", URL: server.URL + "/wildcats"}}
	api := presto.NewAPI(presto.NewClient(5 * time.Second))
	svc := service.NewStatsService(api, memory.NewRepository(), sources, time.Minute, stats.DefaultAdjustConfig())

	handler := NewStatsHandler(svc)
	health := NewHealthHandler()

	router := gin.New()
	router.GET("/api/stats", handler.GetStats)
	router.GET("/api/ratings", handler.GetRatings)
	router.GET("/api/teams/:name", handler.GetTeam)
	router.GET("/api/health", health.GetHealth)
	return router
}

func feedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(wildcatsFeed))
	})
}

func doRequest(router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		body = nil
	}
	return w, body
}

func TestGetStats(t *testing.T) {
	router := newTestRouter(t, feedHandler())

	w, body := doRequest(router, "/api/stats?competition=Conference")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "conference", body["split"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	team := data[0].(map[string]any)
	assert.Equal(t, "Wildcats", team["teamName"])
	assert.Equal(t, float64(1), team["wins"])
}

func TestGetStatsUpstreamDown(t *testing.T) {
	router := newTestRouter(t, http.NotFoundHandler())

	w, body := doRequest(router, "/api/stats")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	require.NotNil(t, body)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestGetRatings(t *testing.T) {
	router := newTestRouter(t, feedHandler())

	w, body := doRequest(router, "/api/ratings")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, body)
	assert.Equal(t, "overall", body["split"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	rating := data[0].(map[string]any)
	assert.Equal(t, "Wildcats", rating["teamName"])
	assert.Contains(t, rating, "adjNTRG")
}

func TestGetTeam(t *testing.T) {
	router := newTestRouter(t, feedHandler())

	w, body := doRequest(router, "/api/teams/wildcatz")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, body)
	team := body["data"].(map[string]any)
	assert.Equal(t, "Wildcats", team["teamName"])

	w, body = doRequest(router, "/api/teams/nobody-plays-here")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, body)
	assert.Equal(t, false, body["success"])
}

func TestGetHealth(t *testing.T) {
	router := newTestRouter(t, feedHandler())

	w, body := doRequest(router, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, body)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}
