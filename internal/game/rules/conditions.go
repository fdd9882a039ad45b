// Package rules evaluates usage conditions and the cost-modifier pipeline.
// Everything here is pure: no state is mutated and nothing is logged.
package rules

import (
	"github.com/hikari-lab/lessonsim/internal/game/card"
	"github.com/hikari-lab/lessonsim/internal/game/state"
)

// indefiniteSentinel stands in for an indefinite buff duration during
// threshold checks, so "has the buff for at least N turns" passes for any
// reasonable N.
const indefiniteSentinel = 1 << 30

// Check evaluates a conjunctive condition list against the state. An empty or
// nil list passes vacuously. An unrecognized condition type fails the whole
// gate: a misauthored condition makes its card or effect unavailable rather
// than incorrectly available.
func Check(s *state.GameState, conds []card.Condition) bool {
	for _, c := range conds {
		target, ok := targetValue(s, c)
		if !ok {
			return false
		}
		if !compare(target, c.Compare, c.Value) {
			return false
		}
	}
	return true
}

func targetValue(s *state.GameState, c card.Condition) (float64, bool) {
	switch c.Type {
	case card.CondGenki:
		return float64(s.Genki), true
	case card.CondGoodImpression:
		return float64(s.GoodImpression), true
	case card.CondMotivation:
		return float64(s.Motivation), true
	case card.CondConcentration:
		return float64(s.Concentration), true
	case card.CondHP:
		return float64(s.HP), true
	case card.CondHPRatio:
		if s.MaxHP == 0 {
			return 0, true
		}
		return float64(s.HP) / float64(s.MaxHP), true
	case card.CondScore:
		return float64(s.Score), true
	case card.CondTurn:
		return float64(s.Turn), true
	case card.CondBuff:
		d, found := s.MaxBuffDuration(c.BuffKind)
		if !found {
			return 0, true
		}
		if d == state.IndefiniteDuration {
			return indefiniteSentinel, true
		}
		return float64(d), true
	}
	return 0, false
}

func compare(target float64, op card.Comparator, value float64) bool {
	switch op {
	case card.CompareLTE:
		return target <= value
	case card.CompareEQ:
		return target == value
	case card.CompareGT:
		return target > value
	case card.CompareLT:
		return target < value
	case card.CompareGTE, "":
		return target >= value
	}
	return false
}
