package effects

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hikari-lab/lessonsim/internal/game/card"
	"github.com/hikari-lab/lessonsim/internal/game/state"
)

// debuffKinds is the closed set of effect kinds the nullify interception
// applies to. ConsumeHP is deliberately absent: direct self-costs always go
// through.
var debuffKinds = map[card.EffectKind]bool{
	card.NoGenkiGain:  true,
	card.DoubleCost:   true,
	card.HalfGenki:    true,
	card.CostIncrease: true,
}

func isDebuff(kind card.EffectKind) bool {
	return debuffKinds[kind]
}

// consumeNullifier discards the incoming debuff when a nullify buff is
// active, spending one use. Count-based nullifiers are preferred and are
// decremented, reaching zero removes them; duration-based ones expire by turn
// bookkeeping instead, and an indefinite one with no count never runs out.
func consumeNullifier(s *state.GameState, ef card.Effect) (*state.GameState, string, bool) {
	idx := -1
	for i, b := range s.Buffs {
		if b.Kind != card.NoDebuff {
			continue
		}
		if b.CountBased {
			idx = i
			break
		}
		if idx == -1 {
			idx = i
		}
	}
	if idx == -1 {
		return s, "", false
	}

	ns := s.Clone()
	b := ns.Buffs[idx]
	switch {
	case b.CountBased:
		b.Count--
		if b.Count <= 0 {
			ns.Buffs = append(ns.Buffs[:idx], ns.Buffs[idx+1:]...)
		} else {
			ns.Buffs[idx] = b
		}
	case b.Duration != state.IndefiniteDuration:
		b.Duration--
		if b.Duration <= 0 {
			ns.Buffs = append(ns.Buffs[:idx], ns.Buffs[idx+1:]...)
		} else {
			ns.Buffs[idx] = b
		}
	}
	return ns, fmt.Sprintf("Debuff nullified: %s", buffDisplayName(ef.Kind)), true
}

var buffNames = map[card.EffectKind]string{
	card.GoodCondition:      "Good Condition",
	card.ExcellentCondition: "Excellent Condition",
	card.CostReduction:      "Cost Reduction",
	card.NoDebuff:           "Debuff Nullifier",
	card.ReduceHPCost:       "Cost -Value",
	card.OnCostTrigger:      "Cost Reaction",
	card.TurnStartTrigger:   "Turn Start Trigger",
	card.NoGenkiGain:        "No Genki Gain",
	card.DoubleCost:         "Double Cost",
	card.CostIncrease:       "Cost Increase",
}

func buffDisplayName(kind card.EffectKind) string {
	if name, ok := buffNames[kind]; ok {
		return name
	}
	return string(kind)
}

// grantBuff appends a new buff instance for a persistent-buff effect. Count
// takes precedence over duration; a missing duration defaults to one turn.
func grantBuff(s *state.GameState, ef card.Effect) (*state.GameState, []string) {
	b := state.Buff{
		ID:               uuid.NewString(),
		Kind:             ef.Kind,
		Name:             buffDisplayName(ef.Kind),
		Value:            ef.Value,
		IsNew:            true,
		TriggeredEffects: ef.TriggeredEffects,
	}

	var log string
	if ef.Count > 0 {
		b.CountBased = true
		b.Count = ef.Count
		log = fmt.Sprintf("%s (%d uses)", b.Name, b.Count)
	} else {
		b.Duration = ef.Duration
		if b.Duration == 0 {
			b.Duration = 1
		}
		if b.Duration == state.IndefiniteDuration {
			log = fmt.Sprintf("%s (indefinite)", b.Name)
		} else {
			log = fmt.Sprintf("%s (%d turns)", b.Name, b.Duration)
		}
	}

	ns := s.Clone()
	ns.Buffs = append(ns.Buffs, b)
	return ns, []string{log}
}
