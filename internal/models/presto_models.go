package models

import (
	"encoding/json"
	"strconv"
)

// TeamData is the per-team feed served by the stats provider: identifying
// attributes, the full game-by-game event log, and the provider's own
// pre-computed split summaries.
type TeamData struct {
	Attributes TeamAttributes      `json:"attributes"`
	Events     []GameEvent         `json:"events"`
	Splits     map[string]StatLine `json:"splits"`
}

type TeamAttributes struct {
	SchoolName string `json:"school_name"`
	Sport      string `json:"sport"`
	SeasonID   string `json:"season_id"`
}

// GameEvent is one scheduled or played game. Stats is an open-ended map of
// raw stat keys; the provider mixes totals, per-game figures, and
// "made-attempted" pair strings in the same payload.
type GameEvent struct {
	Event *EventInfo `json:"event"`
	Stats StatLine   `json:"stats"`
}

type EventInfo struct {
	Date        string     `json:"date"`
	Home        bool       `json:"home"`
	NeutralSite bool       `json:"neutralSite"`
	Conference  bool       `json:"conference"`
	Division    bool       `json:"division"`
	National    bool       `json:"national"`
	Opponent    Opponent   `json:"opponent"`
	Result      *Result    `json:"result"`
	EventType   *EventType `json:"eventType"`
}

type Opponent struct {
	Name string `json:"name"`
}

type Result struct {
	Winner *Winner `json:"winner"`
}

type Winner struct {
	Name string `json:"name"`
}

type EventType struct {
	Code string `json:"code"`
	// StatsCount is a pointer so "explicitly false" can be told apart from
	// the flag simply being absent.
	StatsCount *bool `json:"statsCount"`
}

type StatLine map[string]StatValue

// StatValue is a raw stat payload value. The feed is loosely typed: values
// arrive as strings, bare numbers, or null, so everything is normalized to a
// string form here and parsed downstream.
type StatValue string

func (v *StatValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StatValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = StatValue(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (v StatValue) String() string {
	return string(v)
}

// TeamSource is one entry in the configured team list: a display name and
// the URL of that team's data feed.
type TeamSource struct {
	Name       string `json:"name"`
	Conference string `json:"conference,omitempty"`
	URL        string `json:"url"`
}

// TeamFetchResult pairs a configured team with the outcome of fetching its
// feed. Failed fetches are tolerated; the team is simply carried with
// Success=false so the pipeline can skip it.
type TeamFetchResult struct {
	Name       string
	Conference string
	Data       *TeamData
	Success    bool
	Err        error
}
