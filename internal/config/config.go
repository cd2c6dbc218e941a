package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/jtcarver/hoopsight/internal/models"
	"github.com/jtcarver/hoopsight/internal/stats"
)

type Config struct {
	Server  Server
	Source  Source
	Ratings Ratings
}

type Server struct {
	Port string `envconfig:"PORT" default:"8080"`
}

type Source struct {
	TeamsFile   string        `envconfig:"TEAMS_FILE" default:"config/teams.json"`
	Timeout     time.Duration `envconfig:"SOURCE_TIMEOUT" default:"10s"`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL" default:"15m"`
	RefreshCron string        `envconfig:"REFRESH_CRON" default:"30 * * * *"`
}

type Ratings struct {
	Damping    float64 `envconfig:"SOS_DAMPING" default:"0.4"`
	Iterations int     `envconfig:"SOS_ITERATIONS" default:"5"`
}

// AdjustConfig converts the rating settings into pipeline form.
func (r Ratings) AdjustConfig() stats.AdjustConfig {
	return stats.AdjustConfig{Damping: r.Damping, Iterations: r.Iterations}
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadTeams reads the configured team list: a JSON array of
// {name, url, conference} entries pointing at each team's data feed.
func LoadTeams(path string) ([]models.TeamSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading teams file: %w", err)
	}
	var teams []models.TeamSource
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("parsing teams file %s: %w", path, err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("teams file %s lists no teams", path)
	}
	return teams, nil
}
