package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hikari-lab/lessonsim/internal/game/card"
	"github.com/hikari-lab/lessonsim/internal/game/state"
)

func baseState() *state.GameState {
	return &state.GameState{
		Turn:     1,
		MaxTurns: 12,
		HP:       30,
		MaxHP:    40,
	}
}

func TestResolve_FixedScoreWithAttributeBonus(t *testing.T) {
	s := baseState()
	s.Vocal = 500
	s.TurnAttribute = state.AttributeVocal

	ns, logs := Resolve(s, card.Effect{Kind: card.ScoreFixed, Value: 10})

	// floor(10 * 1.0 * (1 + 500/100)) = 60
	assert.Equal(t, 60, ns.Score)
	assert.Len(t, logs, 1)
	assert.Equal(t, 0, s.Score, "input state must not be mutated")
}

func TestResolve_FixedScoreConcentrationBonus(t *testing.T) {
	s := baseState()
	s.Concentration = 4

	ns, _ := Resolve(s, card.Effect{Kind: card.ScoreFixed, Value: 10})

	// floor((10 + floor(4*1.5)) * 1.0 * 1.0) = 16
	assert.Equal(t, 16, ns.Score)
}

func TestResolve_ConditionMultiplierPrefersStronger(t *testing.T) {
	s := baseState()
	s.Buffs = []state.Buff{
		{Kind: card.GoodCondition, Duration: 2},
		{Kind: card.ExcellentCondition, Duration: 2},
	}

	ns, _ := Resolve(s, card.Effect{Kind: card.ScoreFixed, Value: 10})

	// Excellent (x2.0) wins over Good (x1.5).
	assert.Equal(t, 20, ns.Score)
}

func TestResolve_ScaledScoreByGenki(t *testing.T) {
	s := baseState()
	s.Genki = 30

	ns, logs := Resolve(s, card.Effect{Kind: card.ScoreByGenki, Ratio: 0.5})

	assert.Equal(t, 15, ns.Score)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "genki")
}

func TestResolve_GuardedEffectSkippedSilently(t *testing.T) {
	s := baseState()
	ef := card.Effect{
		Kind:      card.ScoreFixed,
		Value:     10,
		Condition: []card.Condition{{Type: card.CondGenki, Value: 5}},
	}

	ns, logs := Resolve(s, ef)

	assert.Same(t, s, ns, "failed guard must return the input state")
	assert.Empty(t, logs)
}

func TestResolve_GenkiGainWithMotivation(t *testing.T) {
	s := baseState()
	s.Motivation = 3

	ns, logs := Resolve(s, card.Effect{Kind: card.GenkiGain, Value: 10})

	assert.Equal(t, 13, ns.Genki)
	require.Len(t, logs, 2, "flat and motivation portions are logged separately")
	assert.Equal(t, "Genki +10", logs[0])
	assert.Equal(t, "Genki +3 (motivation)", logs[1])
}

func TestResolve_GenkiGainBlockedByNoGenkiGain(t *testing.T) {
	s := baseState()
	s.Genki = 5
	s.Buffs = []state.Buff{{Kind: card.NoGenkiGain, Duration: 2}}

	ns, logs := Resolve(s, card.Effect{Kind: card.GenkiGain, Value: 10})

	assert.Equal(t, 5, ns.Genki)
	require.Len(t, logs, 1)
	assert.Equal(t, "Genki gain blocked", logs[0])
}

func TestResolve_NullifierConsumesDebuff(t *testing.T) {
	s := baseState()
	s.Genki = 10
	s.Buffs = []state.Buff{{Kind: card.NoDebuff, CountBased: true, Count: 1}}

	ns, logs := Resolve(s, card.Effect{Kind: card.HalfGenki})

	assert.Equal(t, 10, ns.Genki, "nullified debuff must not touch genki")
	assert.Empty(t, ns.Buffs, "count 1 nullifier is spent and removed")
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "nullified")
}

func TestResolve_IndefiniteNullifierIsInexhaustible(t *testing.T) {
	s := baseState()
	s.Genki = 8
	s.Buffs = []state.Buff{{Kind: card.NoDebuff, Duration: state.IndefiniteDuration}}

	ns, _ := Resolve(s, card.Effect{Kind: card.HalfGenki})
	assert.Equal(t, 8, ns.Genki)
	require.Len(t, ns.Buffs, 1)

	ns2, _ := Resolve(ns, card.Effect{Kind: card.HalfGenki})
	assert.Equal(t, 8, ns2.Genki)
	assert.Len(t, ns2.Buffs, 1)
}

func TestResolve_ConsumeHPNotNullified(t *testing.T) {
	s := baseState()
	s.Buffs = []state.Buff{{Kind: card.NoDebuff, CountBased: true, Count: 1}}

	ns, _ := Resolve(s, card.Effect{Kind: card.ConsumeHP, Value: 5})

	assert.Equal(t, 25, ns.HP, "consume_hp is a self-cost, not a debuff")
	assert.Len(t, ns.Buffs, 1, "nullifier must not be spent")
}

func TestResolve_HalfAndSetGenki(t *testing.T) {
	s := baseState()
	s.Genki = 7

	ns, _ := Resolve(s, card.Effect{Kind: card.HalfGenki})
	assert.Equal(t, 3, ns.Genki, "half floors")

	ns2, _ := Resolve(ns, card.Effect{Kind: card.SetGenki, Value: 0})
	assert.Equal(t, 0, ns2.Genki)
}

func TestResolve_HealHPCapped(t *testing.T) {
	s := baseState()
	s.HP = 38

	ns, _ := Resolve(s, card.Effect{Kind: card.HealHP, Value: 10})
	assert.Equal(t, 40, ns.HP)
}

func TestResolve_ResourceFloors(t *testing.T) {
	s := baseState()
	s.Motivation = 2
	s.GoodImpression = 1

	ns, _ := Resolve(s, card.Effect{Kind: card.ConsumeMotivation, Value: 5})
	assert.Equal(t, 0, ns.Motivation)

	ns2, _ := Resolve(ns, card.Effect{Kind: card.ConsumeImpression, Value: 5})
	assert.Equal(t, 0, ns2.GoodImpression)
}

func TestResolve_DrawCappedByHandCapacity(t *testing.T) {
	s := baseState()
	s.Deck = []card.Card{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	s.Hand = []card.Card{{ID: "h1"}, {ID: "h2"}, {ID: "h3"}, {ID: "h4"}}

	ns, logs := Resolve(s, card.Effect{Kind: card.DrawCard, Value: 3})

	assert.Len(t, ns.Hand, 5, "draw is capped at hand capacity")
	require.Len(t, logs, 1)
	assert.Equal(t, "Drew 1 card(s)", logs[0])
}

func TestResolve_DrawWithFullHandLogsDistinctMessage(t *testing.T) {
	s := baseState()
	s.Deck = []card.Card{{ID: "a"}}
	s.Hand = []card.Card{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}}

	ns, logs := Resolve(s, card.Effect{Kind: card.DrawCard, Value: 2})

	assert.Same(t, s, ns)
	require.Len(t, logs, 1)
	assert.Equal(t, "Hand is full, no cards drawn", logs[0])
}

func TestResolve_AddCardPlayCount(t *testing.T) {
	s := baseState()
	s.CardsPlayed = 1

	ns, _ := Resolve(s, card.Effect{Kind: card.AddCardPlayCount, Value: 1})
	assert.Equal(t, 0, ns.CardsPlayed)

	ns2, _ := Resolve(ns, card.Effect{Kind: card.AddCardPlayCount, Value: 1})
	assert.Equal(t, 0, ns2.CardsPlayed, "floored at 0")
}

func TestResolve_SwapHand(t *testing.T) {
	s := baseState()
	s.Deck = []card.Card{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	s.Hand = []card.Card{{ID: "x"}, {ID: "y"}}

	ns, logs := Resolve(s, card.Effect{Kind: card.SwapHand})

	assert.Len(t, ns.Hand, 2, "fresh hand of the same size")
	for _, c := range ns.Hand {
		assert.NotContains(t, []string{"x", "y"}, c.ID)
	}
	found := map[string]bool{}
	for _, c := range ns.Discard {
		found[c.ID] = true
	}
	assert.True(t, found["x"] && found["y"], "old hand moved to discard")
	assert.Len(t, logs, 1, "one message regardless of count")
}

func TestResolve_ConditionGateFoldsSequentially(t *testing.T) {
	s := baseState()
	gate := card.Effect{
		Kind: card.ConditionGate,
		SubEffects: []card.Effect{
			{Kind: card.GenkiGain, Value: 10},
			// Sees the genki granted by the previous sub-effect.
			{Kind: card.ScoreByGenki, Ratio: 1},
		},
	}

	ns, _ := Resolve(s, gate)

	assert.Equal(t, 10, ns.Genki)
	assert.Equal(t, 10, ns.Score)
}

func TestResolve_BuffGrantDurationAndCountFraming(t *testing.T) {
	s := baseState()

	ns, logs := Resolve(s, card.Effect{Kind: card.GoodCondition, Duration: 3})
	require.Len(t, ns.Buffs, 1)
	assert.True(t, ns.Buffs[0].IsNew)
	assert.Equal(t, 3, ns.Buffs[0].Duration)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "(3 turns)")

	ns2, logs2 := Resolve(ns, card.Effect{Kind: card.NoDebuff, Count: 2})
	require.Len(t, ns2.Buffs, 2)
	assert.True(t, ns2.Buffs[1].CountBased)
	assert.Equal(t, 2, ns2.Buffs[1].Count)
	assert.Contains(t, logs2[0], "(2 uses)")
}

func TestResolve_BuffDurationDefaultsToOne(t *testing.T) {
	s := baseState()
	ns, _ := Resolve(s, card.Effect{Kind: card.CostReduction})
	require.Len(t, ns.Buffs, 1)
	assert.Equal(t, 1, ns.Buffs[0].Duration)
}

func TestResolve_BuffStacksAreNotDeduplicated(t *testing.T) {
	s := baseState()
	ns, _ := Resolve(s, card.Effect{Kind: card.GoodCondition, Duration: 2})
	ns2, _ := Resolve(ns, card.Effect{Kind: card.GoodCondition, Duration: 5})
	assert.Len(t, ns2.Buffs, 2)
}

func TestResolve_UnknownKindIsNoOp(t *testing.T) {
	s := baseState()
	ns, logs := Resolve(s, card.Effect{Kind: "future_mechanic", Value: 99})
	assert.Same(t, s, ns)
	assert.Empty(t, logs)
}

func TestApplyAll_AppendsLogsOnce(t *testing.T) {
	s := baseState()
	s.Logs = []string{"Turn 1 start"}

	ns := ApplyAll(s, []card.Effect{
		{Kind: card.GenkiGain, Value: 5},
		{Kind: card.ScoreFixed, Value: 10},
	})

	assert.Equal(t, 5, ns.Genki)
	assert.Equal(t, 10, ns.Score)
	assert.Len(t, ns.Logs, 3)
	assert.Len(t, s.Logs, 1, "input logs untouched")
}

func TestApplyAll_NoLogsNoChange(t *testing.T) {
	s := baseState()
	ns := ApplyAll(s, []card.Effect{{Kind: "future_mechanic"}})
	assert.Same(t, s, ns)
}
