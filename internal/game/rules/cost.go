package rules

import (
	"github.com/hikari-lab/lessonsim/internal/game/card"
	"github.com/hikari-lab/lessonsim/internal/game/state"
)

// ActualCost runs a card's base cost through the active cost modifiers.
// Flat adjustments apply before percentage ones, and halving applies before
// doubling: base, minus flat reductions, plus flat increases, halved (floor)
// if any cost-reduction buff is active, doubled if any double-cost buff is
// active, floored at zero.
func ActualCost(c card.Card, buffs []state.Buff) int {
	cost := c.Cost

	for _, b := range buffs {
		switch b.Kind {
		case card.ReduceHPCost:
			cost -= b.Value
		case card.CostIncrease:
			cost += b.Value
		}
	}

	if hasKind(buffs, card.CostReduction) {
		cost = halve(cost)
	}
	if hasKind(buffs, card.DoubleCost) {
		cost *= 2
	}

	if cost < 0 {
		cost = 0
	}
	return cost
}

func hasKind(buffs []state.Buff, kind card.EffectKind) bool {
	for _, b := range buffs {
		if b.Kind == kind {
			return true
		}
	}
	return false
}

// halve floors toward negative infinity so intermediate negatives stay
// consistent with floor(cost * 0.5).
func halve(cost int) int {
	if cost >= 0 {
		return cost / 2
	}
	return (cost - 1) / 2
}
