package stats

import (
	"maps"
	"math"
	"strings"

	"github.com/jtcarver/hoopsight/internal/models"
)

// ftaPossessionWeight is the free-throw term of the NCAA/NAIA box-score
// possession estimate: FGA - OREB + TO + 0.475*FTA.
const ftaPossessionWeight = 0.475

// CalculateAdvanced derives the efficiency metric family for one team from
// its flat field map. It is a pure per-team function: fields may come from
// AggregateStats or directly from provider per-game figures, and any field
// that is missing simply reads as 0.
func CalculateAdvanced(teamName string, fields map[string]float64) models.TeamMetrics {
	fgapg := fields["fgapg"]
	fgmpg := fields["fgmpg"]
	fgm3pg := fields["fgm3pg"]
	fga3pg := fields["fga3pg"]
	orebpg := fields["orebpg"]
	drebpg := fields["drebpg"]
	topg := fields["topg"]
	ftapg := fields["ftapg"]
	ptspg := fields["ptspg"]

	fgapgopp := fields["fgapgopp"]
	fgmpgopp := fields["fgmpgopp"]
	fgm3pgopp := fields["fgm3pgopp"]
	fga3pgopp := fields["fga3pgopp"]
	orebpgopp := fields["orebpgopp"]
	drebpgopp := fields["drebpgopp"]
	topgopp := fields["topgopp"]
	ftapgopp := fields["ftapgopp"]
	ptspgopp := fields["ptspgopp"]

	possessions := fgapg - orebpg + topg + ftaPossessionWeight*ftapg
	oppPossessions := fgapgopp - orebpgopp + topgopp + ftaPossessionWeight*ftapgopp

	ppp := safeDiv(ptspg, possessions)
	oppPpp := safeDiv(ptspgopp, oppPossessions)

	ortg := ppp * 100
	drtg := oppPpp * 100

	m := models.TeamMetrics{
		TeamName:    teamName,
		GamesPlayed: int(fields["gp"]),
		Wins:        int(fields["wins"]),
		Losses:      int(fields["losses"]),

		PossessionsPerGame:    possessions,
		OppPossessionsPerGame: oppPossessions,

		PointsPerPossession:    round3(ppp),
		OppPointsPerPossession: round3(oppPpp),
		NetPointsPerPossession: round3(ppp - oppPpp),

		OffensiveRating: round1(ortg),
		DefensiveRating: round1(drtg),
		NetRating:       round1(ortg - drtg),

		EfgPct:    round1(100 * safeDiv(fgmpg+0.5*fgm3pg, fgapg)),
		EfgPctOpp: round1(100 * safeDiv(fgmpgopp+0.5*fgm3pgopp, fgapgopp)),
		ToPct:     round1(100 * safeDiv(topg, possessions)),
		ToPctOpp:  round1(100 * safeDiv(topgopp, oppPossessions)),
		OrPct:     round1(100 * safeDiv(orebpg, orebpg+drebpgopp)),
		OrPctOpp:  round1(100 * safeDiv(orebpgopp, orebpgopp+drebpg)),
		DrPct:     round1(100 * safeDiv(drebpg, drebpg+orebpgopp)),
		DrPctOpp:  round1(100 * safeDiv(drebpgopp, drebpgopp+orebpg)),

		FtRate:         round1(100 * safeDiv(ftapg, fgapg)),
		FtRateOpp:      round1(100 * safeDiv(ftapgopp, fgapgopp)),
		ThreePtRate:    round1(100 * safeDiv(fga3pg, fgapg)),
		ThreePtRateOpp: round1(100 * safeDiv(fga3pgopp, fgapgopp)),
		ShotVolume:     round3(safeDiv(fgapg+ftaPossessionWeight*ftapg, possessions)),
		ShotVolumeOpp:  round3(safeDiv(fgapgopp+ftaPossessionWeight*ftapgopp, oppPossessions)),

		// Shooting percentages come from summed totals, not per-game
		// figures, so teams with uneven attempts per game are not biased.
		FgPct:  round1(100 * safeDiv(fields["fgm"], fields["fga"])),
		Fg3Pct: round1(100 * safeDiv(fields["fgm3"], fields["fga3"])),
		FtPct:  round1(100 * safeDiv(fields["ftm"], fields["fta"])),

		Raw: maps.Clone(fields),
	}

	return m
}

// CalculateAdvancedFromStats runs the calculator over an aggregate produced
// by AggregateStats.
func CalculateAdvancedFromStats(s *models.TeamStats) models.TeamMetrics {
	fields := make(map[string]float64, len(s.Fields)+4)
	maps.Copy(fields, s.Fields)
	fields["gp"] = float64(s.GamesPlayed)
	fields["wins"] = float64(s.Wins)
	fields["losses"] = float64(s.Losses)
	fields["winPct"] = s.WinPct
	return CalculateAdvanced(s.TeamName, fields)
}

// FieldsFromStatLine converts a provider-supplied split line into calculator
// input. Made-attempted pairs expand into made and attempted fields; plain
// values parse numerically, with anything malformed reading as absent. This is
// the second calculator call path, for feeds that carry pre-computed split
// figures instead of a usable event log.
func FieldsFromStatLine(line models.StatLine) map[string]float64 {
	fields := make(map[string]float64, len(line))
	for key, raw := range line {
		val := raw.String()
		if val == "" {
			continue
		}
		if strings.Contains(val, "-") {
			made, attempted, ok := parsePair(val)
			if !ok {
				continue
			}
			madeKey, attemptedKey := pairKeys(key)
			fields[madeKey] = made
			fields[attemptedKey] = attempted
			continue
		}
		if n, ok := parseStatNumber(val); ok {
			fields[key] = n
		}
	}
	return fields
}

// safeDiv divides with a 0 result for empty or zero denominators, so no
// metric ever comes out NaN or infinite.
func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
