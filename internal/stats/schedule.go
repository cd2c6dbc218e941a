package stats

import (
	"regexp"
	"strings"

	"github.com/jtcarver/hoopsight/internal/models"
)

// AdjustConfig tunes the strength-of-schedule fixed point. The damping
// factor and iteration count are design choices, not derived values, so
// they stay configurable.
type AdjustConfig struct {
	Damping    float64
	Iterations int
}

func DefaultAdjustConfig() AdjustConfig {
	return AdjustConfig{Damping: 0.4, Iterations: 5}
}

// trailingQualifier matches the state/region tag some feeds append to
// opponent names, e.g. "Montana Tech (MT)".
var trailingQualifier = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// OpponentResolver maps the opponent names appearing in event logs onto the
// canonical tracked team names. Resolution tiers: exact match,
// case-insensitive match, then both again after stripping a trailing
// parenthetical qualifier. Names that resolve to no tracked team are
// reported as unmatched and dropped by callers.
type OpponentResolver struct {
	exact  map[string]string
	folded map[string]string
}

func NewOpponentResolver(teamNames []string) *OpponentResolver {
	r := &OpponentResolver{
		exact:  make(map[string]string, len(teamNames)),
		folded: make(map[string]string, len(teamNames)),
	}
	for _, name := range teamNames {
		r.exact[name] = name
		r.folded[strings.ToLower(name)] = name
	}
	return r
}

// Resolve returns the canonical team name for an opponent name from an
// event log, or ok=false when the opponent is not a tracked team.
func (r *OpponentResolver) Resolve(name string) (string, bool) {
	if canonical, ok := r.exact[name]; ok {
		return canonical, true
	}
	if canonical, ok := r.folded[strings.ToLower(name)]; ok {
		return canonical, true
	}
	stripped := strings.TrimSpace(trailingQualifier.ReplaceAllString(name, ""))
	if stripped != name {
		if canonical, ok := r.exact[stripped]; ok {
			return canonical, true
		}
		if canonical, ok := r.folded[strings.ToLower(stripped)]; ok {
			return canonical, true
		}
	}
	return "", false
}

// OpponentNames extracts the resolved opponent list from a team's filtered
// events, dropping and counting names outside the tracked team set. The
// same filtered events that produced the team's aggregate must be used so
// opponent lists and metrics describe the same games.
func (r *OpponentResolver) OpponentNames(events []models.GameEvent) (opponents []string, unresolved int) {
	for _, ev := range events {
		if ev.Event == nil {
			continue
		}
		name := ev.Event.Opponent.Name
		if name == "" {
			continue
		}
		canonical, ok := r.Resolve(name)
		if !ok {
			unresolved++
			continue
		}
		opponents = append(opponents, canonical)
	}
	return opponents, unresolved
}

type adjustedLine struct {
	ortg float64
	drtg float64
}

// AdjustRatings computes schedule-adjusted ratings for the whole league at
// once. Each iteration re-reads opponents' ratings from the previous
// iteration's snapshot, so strength propagates transitively through
// opponents-of-opponents, while the damped correction is always applied to
// the raw rating rather than compounding iteration over iteration.
func AdjustRatings(teams []models.TeamMetrics, opponentsByTeam map[string][]string, cfg AdjustConfig) []models.AdjustedRating {
	if len(teams) == 0 {
		return nil
	}
	if cfg.Iterations <= 0 {
		cfg = DefaultAdjustConfig()
	}

	var sumORTG, sumDRTG float64
	for _, t := range teams {
		sumORTG += t.OffensiveRating
		sumDRTG += t.DefensiveRating
	}
	avgORTG := sumORTG / float64(len(teams))
	avgDRTG := sumDRTG / float64(len(teams))

	current := make(map[string]adjustedLine, len(teams))
	for _, t := range teams {
		current[t.TeamName] = adjustedLine{ortg: t.OffensiveRating, drtg: t.DefensiveRating}
	}

	sos := make(map[string]adjustedLine, len(teams))

	for i := 0; i < cfg.Iterations; i++ {
		next := make(map[string]adjustedLine, len(teams))
		for _, t := range teams {
			var oppORTG, oppDRTG float64
			n := 0
			for _, opp := range opponentsByTeam[t.TeamName] {
				line, ok := current[opp]
				if !ok {
					// Resolved to a tracked team that produced no metrics
					// for this split; it cannot contribute strength.
					continue
				}
				oppORTG += line.ortg
				oppDRTG += line.drtg
				n++
			}

			if n == 0 {
				next[t.TeamName] = adjustedLine{ortg: t.OffensiveRating, drtg: t.DefensiveRating}
				sos[t.TeamName] = adjustedLine{ortg: avgORTG, drtg: avgDRTG}
				continue
			}

			avgOppORTG := oppORTG / float64(n)
			avgOppDRTG := oppDRTG / float64(n)

			// Facing defenses tougher than the league average earns
			// offensive credit, and vice versa on the defensive side.
			offStrength := avgDRTG - avgOppDRTG
			defStrength := avgOppORTG - avgORTG

			next[t.TeamName] = adjustedLine{
				ortg: t.OffensiveRating + cfg.Damping*offStrength,
				drtg: t.DefensiveRating - cfg.Damping*defStrength,
			}
			sos[t.TeamName] = adjustedLine{ortg: avgOppORTG, drtg: avgOppDRTG}
		}
		current = next
	}

	out := make([]models.AdjustedRating, 0, len(teams))
	for _, t := range teams {
		line := current[t.TeamName]
		s := sos[t.TeamName]
		out = append(out, models.AdjustedRating{
			TeamName: t.TeamName,
			AdjORTG:  round1(line.ortg),
			AdjDRTG:  round1(line.drtg),
			AdjNTRG:  round1(line.ortg - line.drtg),
			OSOS:     round1(s.ortg),
			DSOS:     round1(s.drtg),
			NSOS:     round1(s.ortg - s.drtg),
		})
	}
	return out
}
