package card

// Type classifies a skill card.
type Type string

const (
	TypeActive  Type = "active"
	TypeMental  Type = "mental"
	TypeTrouble Type = "trouble"
)

// CostType determines which pool is charged as the base cost.
type CostType string

const (
	CostNormal CostType = "normal" // genki first, shortfall from HP
	CostHP     CostType = "hp"     // charged directly to HP
)

// UsageLimit restricts how often a card may be played within one lesson.
type UsageLimit string

// UsageOncePerLesson sends the card to the excluded zone instead of the
// discard pile after it resolves.
const UsageOncePerLesson UsageLimit = "once_per_lesson"

// Card is an immutable skill card definition. Instances are loaded once and
// shared across game states; nothing in the engine mutates a Card.
type Card struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        Type        `json:"type"`
	Plan        string      `json:"plan,omitempty"`
	Cost        int         `json:"cost"`
	CostType    CostType    `json:"cost_type,omitempty"`
	Effects     []Effect    `json:"effects"`
	// Conditions gate whether the card may be played. The engine does not
	// enforce them inside PlayCard; they are published so the presentation
	// layer can disable the control, matching the source system.
	Conditions  []Condition `json:"conditions,omitempty"`
	Unique      bool        `json:"unique,omitempty"`
	UsageLimit  UsageLimit  `json:"usage_limit,omitempty"`
	StartInHand bool        `json:"start_in_hand,omitempty"`
}

// Effect is one node of the card effect language. Which fields are meaningful
// depends on Kind; unused fields stay at their zero value.
type Effect struct {
	Kind             EffectKind  `json:"kind"`
	Value            int         `json:"value,omitempty"`
	Ratio            float64     `json:"ratio,omitempty"`
	Multiplier       float64     `json:"multiplier,omitempty"`
	Duration         int         `json:"duration,omitempty"` // turns; -1 = indefinite
	Count            int         `json:"count,omitempty"`    // use-count expiry, alternative to Duration
	Condition        []Condition `json:"condition,omitempty"`
	SubEffects       []Effect    `json:"sub_effects,omitempty"`
	TriggeredEffects []Effect    `json:"triggered_effects,omitempty"`
}

// EffectKind identifies an effect handler. The set is closed: the resolver has
// one handler per kind and treats anything else as a defined no-op.
type EffectKind string

const (
	// Score gains.
	ScoreFixed            EffectKind = "score_fixed"
	ScoreByGenki          EffectKind = "score_by_genki"
	ScoreByGoodImpression EffectKind = "score_by_good_impression"
	ScoreByMotivation     EffectKind = "score_by_motivation"
	ScoreByConcentration  EffectKind = "score_by_concentration"

	// Resource mutation.
	GenkiGain         EffectKind = "buff_genki"
	SetGenki          EffectKind = "set_genki"
	HalfGenki         EffectKind = "half_genki"
	HealHP            EffectKind = "heal_hp"
	ConsumeHP         EffectKind = "consume_hp"
	GoodImpressionUp  EffectKind = "buff_good_impression"
	MotivationUp      EffectKind = "buff_motivation"
	ConcentrationUp   EffectKind = "buff_concentration"
	ShieldUp          EffectKind = "buff_shield"
	ConsumeMotivation EffectKind = "consume_motivation"
	ConsumeImpression EffectKind = "consume_impression"

	// Hand manipulation.
	DrawCard         EffectKind = "draw_card"
	AddCardPlayCount EffectKind = "add_card_play_count"
	SwapHand         EffectKind = "swap_hand"

	// Control.
	ConditionGate EffectKind = "condition_gate"

	// Persistent buffs.
	GoodCondition      EffectKind = "buff_good_condition"
	ExcellentCondition EffectKind = "buff_excellent_condition"
	CostReduction      EffectKind = "buff_cost_reduction"
	NoDebuff           EffectKind = "buff_no_debuff"
	ReduceHPCost       EffectKind = "reduce_hp_cost"
	OnCostTrigger      EffectKind = "buff_on_cost_trigger"
	TurnStartTrigger   EffectKind = "buff_turn_start_trigger"

	// Debuffs.
	NoGenkiGain  EffectKind = "debuff_no_genki_gain"
	DoubleCost   EffectKind = "debuff_double_cost"
	CostIncrease EffectKind = "debuff_cost_increase"
)

// Comparator is the comparison operator of a Condition.
type Comparator string

const (
	CompareGTE Comparator = ">="
	CompareLTE Comparator = "<="
	CompareEQ  Comparator = "=="
	CompareGT  Comparator = ">"
	CompareLT  Comparator = "<"
)

// ConditionType names the state value a Condition reads.
type ConditionType string

const (
	CondGenki          ConditionType = "genki"
	CondGoodImpression ConditionType = "impression"
	CondMotivation     ConditionType = "motivation"
	CondConcentration  ConditionType = "concentration"
	CondHP             ConditionType = "hp"
	CondHPRatio        ConditionType = "hp_ratio"
	CondScore          ConditionType = "score"
	CondTurn           ConditionType = "turn"
	CondBuff           ConditionType = "buff"
)

// Condition is a single threshold comparison against game state. A list of
// conditions is evaluated with AND semantics.
type Condition struct {
	Type     ConditionType `json:"type"`
	Compare  Comparator    `json:"compare,omitempty"` // defaults to >=
	Value    float64       `json:"value"`
	BuffKind EffectKind    `json:"buff_kind,omitempty"` // for Type == "buff"
}
