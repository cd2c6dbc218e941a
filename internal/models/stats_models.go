package models

import "time"

// TeamStats is one team's season aggregate for a split: games played,
// record, and the flat field map of summed totals plus per-game rates
// re-derived from those totals.
type TeamStats struct {
	TeamName    string
	GamesPlayed int
	Wins        int
	Losses      int
	WinPct      float64
	Fields      map[string]float64
}

// Field returns the named stat field, or 0 when it was never recorded.
func (s *TeamStats) Field(key string) float64 {
	return s.Fields[key]
}

// TeamMetrics is the calculator output: the underlying aggregate fields
// plus the derived efficiency family.
type TeamMetrics struct {
	TeamName    string `json:"teamName"`
	GamesPlayed int    `json:"gp"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`

	PossessionsPerGame    float64 `json:"possessionsPerGame"`
	OppPossessionsPerGame float64 `json:"oppPossessionsPerGame"`

	PointsPerPossession    float64 `json:"pointsPerPossession"`
	OppPointsPerPossession float64 `json:"oppPointsPerPossession"`
	NetPointsPerPossession float64 `json:"netPointsPerPossession"`

	OffensiveRating float64 `json:"offensiveRating"`
	DefensiveRating float64 `json:"defensiveRating"`
	NetRating       float64 `json:"netRating"`

	EfgPct    float64 `json:"efgPct"`
	EfgPctOpp float64 `json:"efgPctOpp"`
	ToPct     float64 `json:"toPct"`
	ToPctOpp  float64 `json:"toPctOpp"`
	OrPct     float64 `json:"orPct"`
	OrPctOpp  float64 `json:"orPctOpp"`
	DrPct     float64 `json:"drPct"`
	DrPctOpp  float64 `json:"drPctOpp"`

	FtRate         float64 `json:"ftRate"`
	FtRateOpp      float64 `json:"ftRateOpp"`
	ThreePtRate    float64 `json:"threePtRate"`
	ThreePtRateOpp float64 `json:"threePtRateOpp"`
	ShotVolume     float64 `json:"shotVolume"`
	ShotVolumeOpp  float64 `json:"shotVolumeOpp"`

	FgPct  float64 `json:"fgPct"`
	Fg3Pct float64 `json:"fg3Pct"`
	FtPct  float64 `json:"ftPct"`

	// Raw carries every aggregated input field (totals and per-game rates)
	// so the presentation layer can show the underlying box-score numbers.
	Raw map[string]float64 `json:"raw,omitempty"`
}

// AdjustedRating is a team's schedule-adjusted rating line after the
// whole-league fixed-point pass.
type AdjustedRating struct {
	TeamName string  `json:"teamName"`
	AdjORTG  float64 `json:"adjORTG"`
	AdjDRTG  float64 `json:"adjDRTG"`
	AdjNTRG  float64 `json:"adjNTRG"`
	OSOS     float64 `json:"osos"`
	DSOS     float64 `json:"dsos"`
	NSOS     float64 `json:"nsos"`
}

// StatsSnapshot is one fully computed league view for a split: every
// team's metrics plus the schedule-adjusted ratings over the same games.
type StatsSnapshot struct {
	Split               string           `json:"split"`
	LastUpdated         time.Time        `json:"lastUpdated"`
	Teams               []TeamMetrics    `json:"teams"`
	Ratings             []AdjustedRating `json:"ratings"`
	FailedFetches       []string         `json:"failedFetches,omitempty"`
	UnresolvedOpponents int              `json:"unresolvedOpponents"`
}
