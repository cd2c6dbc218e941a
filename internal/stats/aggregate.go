package stats

import (
	"strconv"
	"strings"

	"github.com/jtcarver/hoopsight/internal/models"
)

// AggregateStats sums a team's filtered events into season totals and
// re-derives per-game rates from them. Returns nil when the split holds no
// games, which callers treat as "exclude this team", not as an error.
//
// Aggregation is two-pass per event. Pass 1 expands made-attempted pair
// values ("36-67") into separate made and attempted totals and marks the
// derived keys. Pass 2 sums plain numeric values, skipping pre-computed
// percentages, provider per-game rates, and anything pass 1 already
// produced, so no field is ever counted twice.
func AggregateStats(events []models.GameEvent, teamName string) *models.TeamStats {
	if len(events) == 0 {
		return nil
	}

	agg := &models.TeamStats{
		TeamName:    teamName,
		GamesPlayed: len(events),
	}
	totals := make(map[string]float64)
	fromPair := make(map[string]bool)

	for _, ev := range events {
		if info := ev.Event; info != nil && info.Result != nil && info.Result.Winner != nil && info.Result.Winner.Name != "" {
			if info.Result.Winner.Name == teamName {
				agg.Wins++
			} else {
				agg.Losses++
			}
		}

		for key, raw := range ev.Stats {
			if skipAggregationKey(key) {
				continue
			}
			val := raw.String()
			if !strings.Contains(val, "-") {
				continue
			}
			made, attempted, ok := parsePair(val)
			if !ok {
				continue
			}
			madeKey, attemptedKey := pairKeys(key)
			totals[madeKey] += made
			totals[attemptedKey] += attempted
			fromPair[madeKey] = true
			fromPair[attemptedKey] = true
		}

		for key, raw := range ev.Stats {
			if skipAggregationKey(key) {
				continue
			}
			if ClassifyKey(key) == StatPercentage {
				continue
			}
			val := raw.String()
			if val == "" || strings.Contains(val, "-") {
				continue
			}
			if fromPair[key] {
				continue
			}
			n, ok := parseStatNumber(val)
			if !ok {
				continue
			}
			totals[key] += n
		}
	}

	gp := float64(agg.GamesPlayed)
	fields := make(map[string]float64, 2*len(totals))
	for key, total := range totals {
		fields[key] = total
		if ClassifyKey(key) == StatPercentage {
			// Ratios are not countable totals; they get recomputed by the
			// calculator, never divided per game.
			continue
		}
		// Opponent totals keep the family suffix last: ptsopp -> ptspgopp.
		if strings.HasSuffix(key, "opp") {
			fields[strings.TrimSuffix(key, "opp")+"pgopp"] = total / gp
		} else {
			fields[key+"pg"] = total / gp
		}
	}
	agg.Fields = fields

	if decided := agg.Wins + agg.Losses; decided > 0 {
		agg.WinPct = round3(float64(agg.Wins) / float64(decided))
	}

	return agg
}

func skipAggregationKey(key string) bool {
	kind := ClassifyKey(key)
	return kind == StatReserved || kind == StatPerGame
}

// parsePair parses a "<made>-<attempted>" value. Both halves must be
// numeric or the value is discarded whole.
func parsePair(val string) (made, attempted float64, ok bool) {
	parts := strings.SplitN(val, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	made, ok1 := parseStatNumber(parts[0])
	attempted, ok2 := parseStatNumber(parts[1])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return made, attempted, true
}

func parseStatNumber(val string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(val), ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
