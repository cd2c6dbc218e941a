package stats

import (
	"time"

	"github.com/jtcarver/hoopsight/internal/models"
)

// Filters selects which of a team's games count toward a split. Zero-value
// fields are no-ops; populated fields are AND-combined.
type Filters struct {
	// Location is "home", "away", or "neutral".
	Location string
	// Competition is "conference", "division", or "national".
	Competition string
	// WinLoss is "wins" or "losses".
	WinLoss string
	// Month is a lowercase month name within the season window,
	// "november" through "april".
	Month string
}

// IsZero reports whether no filter is set, i.e. the overall split.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// seasonMonths maps filter names to calendar months. Only the months a
// season can touch are recognized; any other value never matches.
var seasonMonths = map[string]time.Month{
	"november": time.November,
	"december": time.December,
	"january":  time.January,
	"february": time.February,
	"march":    time.March,
	"april":    time.April,
}

// eventDateLayouts are the date formats seen in provider feeds.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"1/2/2006",
}

// FilterEvents returns the subset of events that count toward the given
// split. Events are never mutated. An event is dropped when it has no
// wrapper, no declared winner, is an exhibition or pre-season game, is
// flagged statsCount=false, or carries no real stat values; surviving
// events are then matched against the optional filter predicates.
func FilterEvents(events []models.GameEvent, filters Filters, teamName string) []models.GameEvent {
	if len(events) == 0 {
		return nil
	}

	var out []models.GameEvent
	for _, ev := range events {
		if !isCountedGame(ev) {
			continue
		}
		if !matchesFilters(ev, filters, teamName) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// isCountedGame applies the unconditional exclusion rules: the game must
// have been played (a winner exists) and must carry at least one recorded
// stat value, so scheduled, cancelled, and stat-less games never reach the
// aggregator.
func isCountedGame(ev models.GameEvent) bool {
	info := ev.Event
	if info == nil {
		return false
	}
	if info.Result == nil || info.Result.Winner == nil || info.Result.Winner.Name == "" {
		return false
	}
	if et := info.EventType; et != nil {
		if et.Code == "preSeason" || et.Code == "exhibition" {
			return false
		}
		if et.StatsCount != nil && !*et.StatsCount {
			return false
		}
	}
	if len(ev.Stats) == 0 {
		return false
	}
	for _, v := range ev.Stats {
		if v != "" {
			return true
		}
	}
	return false
}

func matchesFilters(ev models.GameEvent, filters Filters, teamName string) bool {
	info := ev.Event

	// Unrecognized location or competition values filter nothing.
	switch filters.Location {
	case "home":
		if !info.Home {
			return false
		}
	case "away":
		if info.Home || info.NeutralSite {
			return false
		}
	case "neutral":
		if !info.NeutralSite {
			return false
		}
	}

	switch filters.Competition {
	case "conference":
		if !info.Conference {
			return false
		}
	case "division":
		if !info.Division {
			return false
		}
	case "national":
		if !info.National {
			return false
		}
	}

	if filters.WinLoss != "" && teamName != "" {
		isWin := info.Result.Winner.Name == teamName
		if filters.WinLoss == "wins" && !isWin {
			return false
		}
		if filters.WinLoss == "losses" && isWin {
			return false
		}
	}

	if filters.Month != "" {
		want, ok := seasonMonths[filters.Month]
		if !ok {
			return false
		}
		date, ok := parseEventDate(info.Date)
		if !ok || date.Month() != want {
			return false
		}
	}

	return true
}

func parseEventDate(s string) (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
