package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtcarver/hoopsight/internal/models"
)

func TestCalculateAdvancedPossessionFormula(t *testing.T) {
	fields := map[string]float64{
		"fgapg":  60,
		"orebpg": 10,
		"topg":   12,
		"ftapg":  20,
	}

	m := CalculateAdvanced("Oregon Tech", fields)
	assert.Equal(t, 71.5, m.PossessionsPerGame)
}

func TestCalculateAdvancedZeroPossessionsGuard(t *testing.T) {
	m := CalculateAdvanced("A", map[string]float64{})

	assert.Zero(t, m.PossessionsPerGame)
	assert.Zero(t, m.PointsPerPossession)
	assert.Zero(t, m.OffensiveRating)
	assert.Zero(t, m.EfgPct)
	assert.Zero(t, m.ToPct)
	assert.Zero(t, m.OrPct)
	assert.Zero(t, m.FtRate)
	assert.Zero(t, m.ShotVolume)
	assert.False(t, m.PointsPerPossession != m.PointsPerPossession, "must not be NaN")
}

func TestCalculateAdvancedRatingsAndRounding(t *testing.T) {
	fields := map[string]float64{
		"ptspg":  70,
		"fgapg":  60,
		"orebpg": 10,
		"topg":   12,
		"ftapg":  20,

		"ptspgopp":  65,
		"fgapgopp":  55,
		"orebpgopp": 8,
		"topgopp":   14,
		"ftapgopp":  18,
	}

	m := CalculateAdvanced("A", fields)

	// possessions = 71.5, opp possessions = 55 - 8 + 14 + 8.55 = 69.55
	assert.Equal(t, 0.979, m.PointsPerPossession)
	assert.Equal(t, 0.935, m.OppPointsPerPossession)
	assert.Equal(t, 0.044, m.NetPointsPerPossession)
	assert.Equal(t, 97.9, m.OffensiveRating)
	assert.Equal(t, 93.5, m.DefensiveRating)
	assert.Equal(t, 4.4, m.NetRating)
}

func TestCalculateAdvancedFourFactors(t *testing.T) {
	fields := map[string]float64{
		"fgmpg":  30,
		"fgm3pg": 6,
		"fgapg":  60,
		"fga3pg": 18,
		"orebpg": 10,
		"drebpg": 25,
		"topg":   12,
		"ftapg":  20,

		"orebpgopp": 9,
		"drebpgopp": 22,
	}

	m := CalculateAdvanced("A", fields)

	// efg = 100 * (30 + 3) / 60
	assert.Equal(t, 55.0, m.EfgPct)
	// possessions = 60 - 10 + 12 + 9.5 = 71.5
	assert.Equal(t, 16.8, m.ToPct)
	// or% = 100 * 10 / (10 + 22)
	assert.Equal(t, 31.3, m.OrPct)
	// dr% = 100 * 25 / (25 + 9)
	assert.Equal(t, 73.5, m.DrPct)
	// ft rate = 100 * 20 / 60
	assert.Equal(t, 33.3, m.FtRate)
	// 3pt rate = 100 * 18 / 60
	assert.Equal(t, 30.0, m.ThreePtRate)
	// shot volume = (60 + 9.5) / 71.5
	assert.Equal(t, 0.972, m.ShotVolume)
}

func TestCalculateAdvancedShootingFromTotalsNotPerGameAverages(t *testing.T) {
	// Two games, 9-of-10 then 0-of-2. Averaging per-game percentages would
	// give 45%; the totals give 75%.
	events := []models.GameEvent{
		testEvent("A", map[string]string{"fgp": "9-10", "fgpct": "90.0"}),
		testEvent("A", map[string]string{"fgp": "0-2", "fgpct": "0.0"}),
	}
	agg := AggregateStats(events, "A")
	require.NotNil(t, agg)

	m := CalculateAdvancedFromStats(agg)
	assert.Equal(t, 75.0, m.FgPct)
}

func TestCalculateAdvancedCoercesRecordToInts(t *testing.T) {
	m := CalculateAdvanced("A", map[string]float64{"gp": 12, "wins": 8, "losses": 4})
	assert.Equal(t, 12, m.GamesPlayed)
	assert.Equal(t, 8, m.Wins)
	assert.Equal(t, 4, m.Losses)
}

func TestCalculateAdvancedFromStatsCarriesIdentity(t *testing.T) {
	agg := &models.TeamStats{
		TeamName:    "Oregon Tech",
		GamesPlayed: 2,
		Wins:        1,
		Losses:      1,
		WinPct:      0.5,
		Fields:      map[string]float64{"ptspg": 70, "fgapg": 60, "orebpg": 10, "topg": 12, "ftapg": 20},
	}

	m := CalculateAdvancedFromStats(agg)
	assert.Equal(t, "Oregon Tech", m.TeamName)
	assert.Equal(t, 2, m.GamesPlayed)
	assert.Equal(t, 0.5, m.Raw["winPct"])
	assert.Equal(t, 70.0, m.Raw["ptspg"])
}

func TestFieldsFromStatLine(t *testing.T) {
	line := models.StatLine{
		"fgp":   "36-67",
		"ptspg": "70.5",
		"fgpct": "53.7",
		"oreb":  "1,020",
		"junk":  "abc",
		"blank": "",
	}

	fields := FieldsFromStatLine(line)

	assert.Equal(t, 36.0, fields["fgm"])
	assert.Equal(t, 67.0, fields["fga"])
	assert.Equal(t, 70.5, fields["ptspg"])
	assert.Equal(t, 53.7, fields["fgpct"])
	assert.Equal(t, 1020.0, fields["oreb"])
	assert.NotContains(t, fields, "junk")
	assert.NotContains(t, fields, "blank")
}
