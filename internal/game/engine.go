// Package game drives the lesson simulation: initialization, per-card play
// and per-turn transition over an immutable GameState. Every transition takes
// a state snapshot and returns a new one; rejected actions return the input
// unchanged with no error, since the presentation layer is expected to have
// disabled the offending control.
package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hikari-lab/lessonsim/internal/game/card"
	"github.com/hikari-lab/lessonsim/internal/game/deck"
	"github.com/hikari-lab/lessonsim/internal/game/effects"
	"github.com/hikari-lab/lessonsim/internal/game/rules"
	"github.com/hikari-lab/lessonsim/internal/game/state"
)

const (
	openingHandSize = 3
	turnRefillSize  = 3
	skipRecoveryHP  = 2
	// Score granted per good impression stack at end of turn, before decay.
	goodImpressionScoreRate = 1
	defaultMaxTurns         = 12
)

// InitialStatus seeds the produce parameters of a lesson.
type InitialStatus struct {
	Vocal    int
	Dance    int
	Visual   int
	HP       int
	MaxHP    int
	MaxTurns int
}

// Engine orchestrates state transitions. The logger is optional; a nil
// logger disables diagnostics without affecting gameplay logs.
type Engine struct {
	logger *zap.Logger
}

// New creates an Engine.
func New(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Initialize builds the opening game state: startInHand cards go straight to
// the hand, the rest is shuffled into the deck, and the hand is drawn up to
// the opening size.
func (e *Engine) Initialize(status InitialStatus, turnAttrs []state.Attribute, roster []card.Card, drinks []state.PDrink) *state.GameState {
	var hand, pile []card.Card
	for _, c := range roster {
		if c.StartInHand {
			hand = append(hand, c)
		} else {
			pile = append(pile, c)
		}
	}
	pile = deck.Shuffle(pile)

	need := openingHandSize - len(hand)
	if need < 0 {
		need = 0
	}
	res := deck.Draw(pile, nil, need, hand)
	hand = append(hand, res.Drawn...)

	maxTurns := status.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}

	slots := make([]state.PDrinkSlot, len(drinks))
	for i, d := range drinks {
		slots[i] = state.PDrinkSlot{Drink: d}
	}

	s := &state.GameState{
		Turn:          1,
		MaxTurns:      maxTurns,
		Phase:         state.PhaseStart,
		TurnAttribute: attributeAt(turnAttrs, 1),
		HP:            status.HP,
		MaxHP:         status.MaxHP,
		Vocal:         status.Vocal,
		Dance:         status.Dance,
		Visual:        status.Visual,
		Deck:          res.Deck,
		Hand:          hand,
		Discard:       res.Discard,
		Logs:          []string{"Turn 1 start"},
		PDrinks:       slots,
	}

	if e.logger != nil {
		e.logger.Info("lesson initialized",
			zap.Int("deck_size", len(s.Deck)),
			zap.Int("hand_size", len(s.Hand)),
			zap.Int("max_turns", s.MaxTurns),
			zap.String("turn_attribute", string(s.TurnAttribute)),
		)
	}
	return s
}

// PlayCard plays the identified card from the hand. Preconditions that fail
// (play cap reached, unknown card, insufficient resources) return the input
// state unchanged. Cost is paid from genki first with the shortfall from HP;
// cards declaring an HP cost type are charged to HP directly. Reaction buffs
// watching for HP spent on cost fire after the card's own effects.
func (e *Engine) PlayCard(s *state.GameState, cardID string) *state.GameState {
	if s.CardsPlayed >= 1 {
		return s
	}
	idx := -1
	for i, c := range s.Hand {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return s
	}
	c := s.Hand[idx]

	cost := rules.ActualCost(c, s.Buffs)

	for _, ef := range c.Effects {
		if ef.Kind == card.ConsumeMotivation && s.Motivation < ef.Value {
			return s
		}
		if ef.Kind == card.ConsumeImpression && s.GoodImpression < ef.Value {
			return s
		}
	}

	if s.HP+s.Genki < cost {
		return s
	}

	var genkiSpend, hpSpend int
	if c.CostType == card.CostHP {
		hpSpend = cost
	} else {
		hpSpend = cost - s.Genki
		if hpSpend < 0 {
			hpSpend = 0
		}
		genkiSpend = cost - hpSpend
	}

	// HP spent on a cost wakes reaction buffs; their effects fire in
	// addition to the card's own.
	var reactions []card.Effect
	var reactionCount int
	if hpSpend > 0 {
		for _, b := range s.Buffs {
			if b.Kind == card.OnCostTrigger {
				reactions = append(reactions, b.TriggeredEffects...)
				reactionCount++
			}
		}
	}

	ns := s.Clone()
	ns.Genki -= genkiSpend
	ns.HP = clampFloor(ns.HP-hpSpend, 0)

	if cost > 0 {
		ns.Logs = append(ns.Logs, fmt.Sprintf("Played %s (cost %d)", c.Name, cost))
	} else {
		ns.Logs = append(ns.Logs, fmt.Sprintf("Played %s", c.Name))
	}

	ns = effects.ApplyAll(ns, c.Effects)

	if len(reactions) > 0 {
		ns = ns.Clone()
		ns.Logs = append(ns.Logs, fmt.Sprintf("Cost reaction triggered (%d)", reactionCount))
		ns = effects.ApplyAll(ns, reactions)
	}

	ns = relocatePlayed(ns, c)
	ns.CardsPlayed++

	if e.logger != nil {
		e.logger.Debug("card played",
			zap.String("card_id", c.ID),
			zap.String("card_name", c.Name),
			zap.Int("cost", cost),
			zap.Int("hp_spend", hpSpend),
			zap.Int("genki_spend", genkiSpend),
		)
	}
	return ns
}

// relocatePlayed moves the spent card out of the hand: to the excluded zone
// for once-per-lesson cards, otherwise to the discard pile. If an effect has
// already moved it (a hand swap), the card stays where that effect put it.
func relocatePlayed(s *state.GameState, c card.Card) *state.GameState {
	idx := -1
	for i, h := range s.Hand {
		if h.ID == c.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return s
	}
	ns := s.Clone()
	ns.Hand = append(ns.Hand[:idx], ns.Hand[idx+1:]...)
	if c.UsageLimit == card.UsageOncePerLesson {
		ns.Excluded = append(ns.Excluded, c)
	} else {
		ns.Discard = append(ns.Discard, c)
	}
	return ns
}

// EndTurn runs the turn transition: skip recovery, hand refill, good
// impression scoring and decay, buff duration bookkeeping, turn advance, then
// turn-start triggers. At the turn horizon it is a no-op.
func (e *Engine) EndTurn(s *state.GameState, turnAttrs []state.Attribute) *state.GameState {
	if s.Turn >= s.MaxTurns {
		return s
	}

	ns := s.Clone()

	skipped := ns.CardsPlayed == 0
	if skipped {
		ns.HP = minInt(ns.MaxHP, ns.HP+skipRecoveryHP)
	}

	ns.Discard = append(ns.Discard, ns.Hand...)
	ns.Hand = nil
	refill := minInt(turnRefillSize, state.HandCapacity-len(ns.Hand))
	res := deck.Draw(ns.Deck, ns.Discard, refill, ns.Hand)
	ns.Deck = res.Deck
	ns.Discard = res.Discard
	ns.Hand = append(ns.Hand, res.Drawn...)

	if ns.GoodImpression > 0 {
		gain := ns.GoodImpression * goodImpressionScoreRate
		ns.Score += gain
		ns.Logs = append(ns.Logs, fmt.Sprintf("Score +%d (good impression)", gain))
	}

	ns.Buffs = advanceBuffs(ns.Buffs)

	if ns.GoodImpression > 0 {
		ns.GoodImpression--
	}

	ns.Turn++
	ns.CardsPlayed = 0
	ns.Phase = state.PhaseStart
	ns.TurnAttribute = attributeAt(turnAttrs, ns.Turn)

	startLog := fmt.Sprintf("Turn %d start", ns.Turn)
	if skipped {
		startLog += fmt.Sprintf(" (skip recovery +%d HP)", skipRecoveryHP)
	}
	ns.Logs = append(ns.Logs, startLog)

	var triggers []card.Effect
	var triggerCount int
	for _, b := range ns.Buffs {
		if b.Kind == card.TurnStartTrigger {
			triggers = append(triggers, b.TriggeredEffects...)
			triggerCount++
		}
	}
	if len(triggers) > 0 {
		ns.Logs = append(ns.Logs, fmt.Sprintf("Turn start trigger fired (%d)", triggerCount))
		ns = effects.ApplyAll(ns, triggers)
	}

	if e.logger != nil {
		e.logger.Debug("turn advanced",
			zap.Int("turn", ns.Turn),
			zap.Int("score", ns.Score),
			zap.Int("hp", ns.HP),
			zap.Bool("skipped", skipped),
		)
	}
	return ns
}

// advanceBuffs applies end-of-turn duration bookkeeping. Buffs created this
// turn have their IsNew flag cleared instead of losing a turn; count-based
// and indefinite buffs are untouched; a duration reaching zero removes the
// buff.
func advanceBuffs(buffs []state.Buff) []state.Buff {
	kept := buffs[:0:0]
	for _, b := range buffs {
		if b.IsNew {
			b.IsNew = false
			kept = append(kept, b)
			continue
		}
		if b.CountBased || b.Duration == state.IndefiniteDuration {
			kept = append(kept, b)
			continue
		}
		b.Duration--
		if b.Duration <= 0 {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

// UsePDrink applies the drink at the given index and marks it used. Used or
// out-of-range drinks are a silent no-op. Drinks do not consume the per-turn
// card play.
func (e *Engine) UsePDrink(s *state.GameState, index int) *state.GameState {
	if index < 0 || index >= len(s.PDrinks) || s.PDrinks[index].Used {
		return s
	}
	slot := s.PDrinks[index]

	ns := s.Clone()
	ns.PDrinks[index].Used = true
	ns.Logs = append(ns.Logs, fmt.Sprintf("Used P-drink: %s", slot.Drink.Name))
	ns = effects.ApplyAll(ns, slot.Drink.Effects)

	if e.logger != nil {
		e.logger.Debug("p-drink used", zap.String("drink", slot.Drink.Name), zap.Int("index", index))
	}
	return ns
}

// attributeAt resolves the turn attribute from the schedule, clamping to the
// last entry when the schedule is shorter than the turn number.
func attributeAt(attrs []state.Attribute, turn int) state.Attribute {
	if len(attrs) == 0 {
		return ""
	}
	idx := turn - 1
	if idx >= len(attrs) {
		idx = len(attrs) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return attrs[idx]
}

func clampFloor(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
