// Package stats implements the event-to-aggregate pipeline: filtering raw
// game events into splits, summing them into season totals, deriving
// efficiency metrics, and adjusting ratings for strength of schedule.
package stats

import (
	"regexp"
	"strings"
)

// StatKind classifies a raw stat key so the aggregator knows whether to sum
// it, re-derive it, or ignore it.
type StatKind int

const (
	// StatCount is an additive total (points, rebounds, turnovers).
	StatCount StatKind = iota
	// StatPair is a "made-attempted" string like "36-67" that expands into
	// separate made and attempted totals.
	StatPair
	// StatPercentage is a ratio the provider pre-computed; it is never
	// summed, only recomputed from totals.
	StatPercentage
	// StatPerGame is a provider-computed per-game or per-margin rate; it is
	// discarded in favor of re-deriving from our own totals.
	StatPerGame
	// StatReserved covers bookkeeping keys the aggregator owns itself.
	StatReserved
)

// knownStatKinds resolves the well-known provider keys without touching the
// heuristics. Unrecognized keys fall through to classifyHeuristic, so new
// upstream fields keep working.
var knownStatKinds = map[string]StatKind{
	"pts": StatCount, "ptsopp": StatCount,
	"oreb": StatCount, "dreb": StatCount, "treb": StatCount,
	"orebopp": StatCount, "drebopp": StatCount, "trebopp": StatCount,
	"ast": StatCount, "stl": StatCount, "blk": StatCount, "to": StatCount, "pf": StatCount,
	"astopp": StatCount, "stlopp": StatCount, "blkopp": StatCount, "toopp": StatCount,

	"fgp": StatPair, "fgp3": StatPair, "ftp": StatPair,

	"fgpct": StatPercentage, "fg3pct": StatPercentage, "ftpct": StatPercentage,
	"fgpctopp": StatPercentage, "fg3pctopp": StatPercentage, "ftpctopp": StatPercentage,

	"ptspg": StatPerGame, "ptspgopp": StatPerGame,
	"rebpg": StatPerGame, "rebpgopp": StatPerGame,

	"gp": StatReserved, "gs": StatReserved, "wins": StatReserved, "losses": StatReserved,
}

var (
	fgPctPattern      = regexp.MustCompile(`fg[pm]?t`)
	ftPctPattern      = regexp.MustCompile(`ft[pm]?t`)
	numberedPctPrefix = regexp.MustCompile(`^(fg|ft)\d?pt`)
)

// perGameSuffixes are provider-computed rate suffixes; anything carrying one
// is skipped during aggregation so rates are only ever re-derived from
// totals.
var perGameSuffixes = []string{"pg", "pgopp", "pm", "pmopp"}

// ClassifyKey maps a raw stat key to its kind: table lookup first, heuristic
// fallback for keys the table has never seen.
func ClassifyKey(key string) StatKind {
	if kind, ok := knownStatKinds[strings.ToLower(key)]; ok {
		return kind
	}
	return classifyHeuristic(key)
}

func classifyHeuristic(key string) StatKind {
	if hasPerGameSuffix(key) {
		return StatPerGame
	}
	if isPercentageKey(key) {
		return StatPercentage
	}
	return StatCount
}

func hasPerGameSuffix(key string) bool {
	for _, suffix := range perGameSuffixes {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}

// isPercentageKey reports whether a key names a pre-computed ratio: anything
// containing "pct", or the provider's fgt/fgpt/fgmt and ftt/ftpt/ftmt
// spellings, or fg3pt-style numbered variants.
func isPercentageKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "pct") ||
		fgPctPattern.MatchString(lower) ||
		ftPctPattern.MatchString(lower) ||
		numberedPctPrefix.MatchString(lower)
}

var madeAttemptedStem = regexp.MustCompile(`^([a-z]+)p`)

// pairKeys derives the made and attempted total keys for a made-attempted
// source key by swapping its trailing percentage marker: fgp -> fgm/fga,
// fgp3 -> fgm3/fga3, ftp -> ftm/fta. A key with no such marker maps to
// itself unchanged.
func pairKeys(key string) (made, attempted string) {
	made = madeAttemptedStem.ReplaceAllString(key, "${1}m")
	attempted = madeAttemptedStem.ReplaceAllString(key, "${1}a")
	return made, attempted
}
