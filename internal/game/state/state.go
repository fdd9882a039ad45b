package state

import "github.com/hikari-lab/lessonsim/internal/game/card"

// Attribute is the per-turn designated stat that feeds the scoring multiplier.
type Attribute string

const (
	AttributeVocal  Attribute = "vocal"
	AttributeDance  Attribute = "dance"
	AttributeVisual Attribute = "visual"
)

// Phase is informational; card play happens during PhaseMain.
type Phase string

const (
	PhaseStart Phase = "start"
	PhaseMain  Phase = "main"
	PhaseEnd   Phase = "end"
)

// HandCapacity is the maximum number of cards the hand may hold.
const HandCapacity = 5

// IndefiniteDuration marks a buff that never expires by turn count.
const IndefiniteDuration = -1

// Buff is a persistent modifier attached to the game state. A buff expires
// either by turn count (Duration reaching 0 at end of turn) or by use count
// (Count reaching 0 on a triggering event), never both.
type Buff struct {
	ID         string          `json:"id"`
	Kind       card.EffectKind `json:"kind"`
	Name       string          `json:"name"`
	Value      int             `json:"value,omitempty"`
	Duration   int             `json:"duration,omitempty"`
	Count      int             `json:"count,omitempty"`
	CountBased bool            `json:"count_based,omitempty"`
	// IsNew marks a buff created during the current turn. The first end-of-turn
	// boundary clears the flag instead of decrementing Duration, so a buff
	// granted this turn survives at least one full subsequent turn.
	IsNew            bool          `json:"is_new,omitempty"`
	TriggeredEffects []card.Effect `json:"triggered_effects,omitempty"`
}

// PDrink is a consumable usable at most once per lesson.
type PDrink struct {
	Name    string        `json:"name"`
	Effects []card.Effect `json:"effects"`
}

// PDrinkSlot pairs a drink with its used flag.
type PDrinkSlot struct {
	Drink PDrink `json:"drink"`
	Used  bool   `json:"used"`
}

// GameState is the aggregate root. It is replaced wholesale on every
// transition and never mutated in place; callers must treat a received state
// as immutable and thread the returned snapshot through subsequent calls.
type GameState struct {
	Turn          int       `json:"turn"`
	MaxTurns      int       `json:"max_turns"`
	Phase         Phase     `json:"phase"`
	TurnAttribute Attribute `json:"turn_attribute"`

	HP             int `json:"hp"`
	MaxHP          int `json:"max_hp"`
	Genki          int `json:"genki"`
	GoodImpression int `json:"good_impression"`
	Motivation     int `json:"motivation"`
	Concentration  int `json:"concentration"`
	Shield         int `json:"shield"`

	Vocal  int `json:"vocal"`
	Dance  int `json:"dance"`
	Visual int `json:"visual"`

	Score int `json:"score"`

	// Card zones. A card instance belongs to exactly one zone at a time.
	// Deck order is next-to-draw at the end.
	Deck     []card.Card `json:"deck"`
	Hand     []card.Card `json:"hand"`
	Discard  []card.Card `json:"discard"`
	OnHold   []card.Card `json:"on_hold"`
	Excluded []card.Card `json:"excluded"`

	CardsPlayed int          `json:"cards_played"`
	Buffs       []Buff       `json:"buffs"`
	Logs        []string     `json:"logs"`
	PDrinks     []PDrinkSlot `json:"p_drinks"`
}

// Clone returns a copy safe to mutate. Zone slices, buffs, logs and drink
// slots are copied; Card values inside the zones are shared because card
// definitions are immutable.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Deck = append([]card.Card(nil), s.Deck...)
	c.Hand = append([]card.Card(nil), s.Hand...)
	c.Discard = append([]card.Card(nil), s.Discard...)
	c.OnHold = append([]card.Card(nil), s.OnHold...)
	c.Excluded = append([]card.Card(nil), s.Excluded...)
	c.Buffs = append([]Buff(nil), s.Buffs...)
	c.Logs = append([]string(nil), s.Logs...)
	c.PDrinks = append([]PDrinkSlot(nil), s.PDrinks...)
	return &c
}

// HasBuff reports whether any active buff of the given kind exists.
func (s *GameState) HasBuff(kind card.EffectKind) bool {
	for _, b := range s.Buffs {
		if b.Kind == kind {
			return true
		}
	}
	return false
}

// MaxBuffDuration returns the largest remaining duration among buffs of the
// given kind, with indefinite buffs reported as IndefiniteDuration. The
// second return is false when no such buff is active.
func (s *GameState) MaxBuffDuration(kind card.EffectKind) (int, bool) {
	best := 0
	found := false
	for _, b := range s.Buffs {
		if b.Kind != kind {
			continue
		}
		if !found {
			best = b.Duration
			found = true
			continue
		}
		if b.Duration == IndefiniteDuration || (best != IndefiniteDuration && b.Duration > best) {
			best = b.Duration
		}
	}
	return best, found
}

// AttributeStat returns the base stat matching the current turn attribute.
func (s *GameState) AttributeStat() int {
	switch s.TurnAttribute {
	case AttributeVocal:
		return s.Vocal
	case AttributeDance:
		return s.Dance
	case AttributeVisual:
		return s.Visual
	}
	return 0
}
