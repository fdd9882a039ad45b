// Package effects is the interpreter for the card effect language. Resolve
// applies one structured effect to a state snapshot and returns a new
// snapshot plus human-readable log lines; ApplyAll folds a list of effects.
// Both are pure: inputs are never mutated.
package effects

import (
	"fmt"
	"math"

	"github.com/hikari-lab/lessonsim/internal/game/card"
	"github.com/hikari-lab/lessonsim/internal/game/deck"
	"github.com/hikari-lab/lessonsim/internal/game/rules"
	"github.com/hikari-lab/lessonsim/internal/game/state"
)

// Tuning constants carried over from the source game.
const (
	concentrationScoreFactor = 1.5 // flat-score bonus per concentration stack
	motivationGenkiPerStack  = 1   // extra genki per motivation stack on gains
	goodConditionMultiplier  = 1.5
	excellentConditionMult   = 2.0
)

// Resolve applies a single effect. If the effect carries a condition that
// does not hold, the input state is returned untouched with no logs. If the
// effect kind is a debuff and a nullifier buff is active, one use of the
// nullifier is consumed and the debuff is discarded. Unrecognized kinds are a
// deliberate no-op so the effect taxonomy can grow ahead of the resolver.
func Resolve(s *state.GameState, ef card.Effect) (*state.GameState, []string) {
	if len(ef.Condition) > 0 && !rules.Check(s, ef.Condition) {
		return s, nil
	}

	if isDebuff(ef.Kind) {
		if ns, log, nullified := consumeNullifier(s, ef); nullified {
			return ns, []string{log}
		}
	}

	switch ef.Kind {
	case card.ScoreFixed:
		return applyFixedScore(s, ef)
	case card.ScoreByGenki:
		return applyScaledScore(s, ef, s.Genki, "genki")
	case card.ScoreByGoodImpression:
		return applyScaledScore(s, ef, s.GoodImpression, "good impression")
	case card.ScoreByMotivation:
		return applyScaledScore(s, ef, s.Motivation, "motivation")
	case card.ScoreByConcentration:
		return applyScaledScore(s, ef, s.Concentration, "concentration")
	case card.GenkiGain:
		return applyGenkiGain(s, ef)
	case card.SetGenki:
		ns := s.Clone()
		ns.Genki = ef.Value
		return ns, []string{fmt.Sprintf("Genki set to %d", ns.Genki)}
	case card.HalfGenki:
		ns := s.Clone()
		ns.Genki /= 2
		return ns, []string{fmt.Sprintf("Genki halved to %d", ns.Genki)}
	case card.HealHP:
		ns := s.Clone()
		ns.HP = minInt(ns.MaxHP, ns.HP+ef.Value)
		return ns, []string{fmt.Sprintf("HP +%d", ef.Value)}
	case card.ConsumeHP:
		// Direct self-cost; deliberately outside the debuff nullify path.
		ns := s.Clone()
		ns.HP = maxInt(0, ns.HP-ef.Value)
		return ns, []string{fmt.Sprintf("HP -%d", ef.Value)}
	case card.GoodImpressionUp:
		ns := s.Clone()
		ns.GoodImpression = maxInt(0, ns.GoodImpression+ef.Value)
		return ns, []string{fmt.Sprintf("Good impression %+d", ef.Value)}
	case card.MotivationUp:
		ns := s.Clone()
		ns.Motivation = maxInt(0, ns.Motivation+ef.Value)
		return ns, []string{fmt.Sprintf("Motivation %+d", ef.Value)}
	case card.ConcentrationUp:
		ns := s.Clone()
		ns.Concentration = maxInt(0, ns.Concentration+ef.Value)
		return ns, []string{fmt.Sprintf("Concentration %+d", ef.Value)}
	case card.ShieldUp:
		ns := s.Clone()
		ns.Shield = maxInt(0, ns.Shield+ef.Value)
		return ns, []string{fmt.Sprintf("Shield %+d", ef.Value)}
	case card.ConsumeMotivation:
		ns := s.Clone()
		ns.Motivation = maxInt(0, ns.Motivation-ef.Value)
		return ns, []string{fmt.Sprintf("Motivation -%d", ef.Value)}
	case card.ConsumeImpression:
		ns := s.Clone()
		ns.GoodImpression = maxInt(0, ns.GoodImpression-ef.Value)
		return ns, []string{fmt.Sprintf("Good impression -%d", ef.Value)}
	case card.DrawCard:
		return applyDraw(s, ef)
	case card.AddCardPlayCount:
		ns := s.Clone()
		ns.CardsPlayed = maxInt(0, ns.CardsPlayed-ef.Value)
		return ns, []string{fmt.Sprintf("Extra card play +%d", ef.Value)}
	case card.SwapHand:
		return applySwapHand(s)
	case card.ConditionGate:
		// Sub-effects fold over the running state, not the original.
		cur := s
		var logs []string
		for _, sub := range ef.SubEffects {
			var l []string
			cur, l = Resolve(cur, sub)
			logs = append(logs, l...)
		}
		return cur, logs
	case card.GoodCondition, card.ExcellentCondition, card.CostReduction,
		card.NoDebuff, card.ReduceHPCost, card.OnCostTrigger,
		card.TurnStartTrigger, card.NoGenkiGain, card.DoubleCost,
		card.CostIncrease:
		return grantBuff(s, ef)
	}

	// Unknown kind: defined pass-through, not an error.
	return s, nil
}

// ApplyAll folds Resolve over an ordered effect list, concatenating the log
// lines and appending them to the state's log in one batch at the end.
func ApplyAll(s *state.GameState, efs []card.Effect) *state.GameState {
	cur := s
	var logs []string
	for _, ef := range efs {
		var l []string
		cur, l = Resolve(cur, ef)
		logs = append(logs, l...)
	}
	if len(logs) == 0 {
		return cur
	}
	out := cur.Clone()
	out.Logs = append(out.Logs, logs...)
	return out
}

// conditionMultiplier returns the score multiplier from condition buffs,
// preferring the stronger one when both are active.
func conditionMultiplier(s *state.GameState) float64 {
	if s.HasBuff(card.ExcellentCondition) {
		return excellentConditionMult
	}
	if s.HasBuff(card.GoodCondition) {
		return goodConditionMultiplier
	}
	return 1.0
}

// attributeBonus is 1 + matching base stat / 100 for the current turn
// attribute.
func attributeBonus(s *state.GameState) float64 {
	return 1.0 + float64(s.AttributeStat())/100.0
}

func applyFixedScore(s *state.GameState, ef card.Effect) (*state.GameState, []string) {
	mult := ef.Multiplier
	if mult == 0 {
		mult = 1
	}
	concBonus := math.Floor(float64(s.Concentration) * concentrationScoreFactor * mult)
	gain := int(math.Floor((float64(ef.Value) + concBonus) * conditionMultiplier(s) * attributeBonus(s)))

	ns := s.Clone()
	ns.Score += gain
	return ns, []string{fmt.Sprintf("Score +%d", gain)}
}

func applyScaledScore(s *state.GameState, ef card.Effect, resource int, label string) (*state.GameState, []string) {
	mult := ef.Multiplier
	if mult == 0 {
		mult = 1
	}
	gain := int(math.Floor(float64(resource) * ef.Ratio * mult * conditionMultiplier(s) * attributeBonus(s)))

	ns := s.Clone()
	ns.Score += gain
	return ns, []string{fmt.Sprintf("Score +%d (from %s)", gain, label)}
}

func applyGenkiGain(s *state.GameState, ef card.Effect) (*state.GameState, []string) {
	// A "no genki gain" debuff blocks the gained amount itself. This is a
	// separate mechanism from the generic nullify interception above, which
	// swallows whole debuff effects; the two paths are kept distinct on
	// purpose.
	if s.HasBuff(card.NoGenkiGain) {
		return s, []string{"Genki gain blocked"}
	}

	bonus := s.Motivation * motivationGenkiPerStack
	ns := s.Clone()
	ns.Genki += ef.Value + bonus

	logs := []string{fmt.Sprintf("Genki +%d", ef.Value)}
	if bonus > 0 {
		logs = append(logs, fmt.Sprintf("Genki +%d (motivation)", bonus))
	}
	return ns, logs
}

func applyDraw(s *state.GameState, ef card.Effect) (*state.GameState, []string) {
	capacity := state.HandCapacity - len(s.Hand)
	n := minInt(ef.Value, capacity)
	if n <= 0 {
		return s, []string{"Hand is full, no cards drawn"}
	}

	res := deck.Draw(s.Deck, s.Discard, n, s.Hand)
	ns := s.Clone()
	ns.Deck = res.Deck
	ns.Discard = res.Discard
	ns.Hand = append(ns.Hand, res.Drawn...)
	return ns, []string{fmt.Sprintf("Drew %d card(s)", len(res.Drawn))}
}

func applySwapHand(s *state.GameState) (*state.GameState, []string) {
	n := len(s.Hand)
	discard := append(append([]card.Card(nil), s.Discard...), s.Hand...)
	res := deck.Draw(s.Deck, discard, n, nil)

	ns := s.Clone()
	ns.Deck = res.Deck
	ns.Discard = res.Discard
	ns.Hand = res.Drawn
	return ns, []string{fmt.Sprintf("Swapped hand (%d cards)", len(res.Drawn))}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
