// Package compile turns free-text card descriptions from the authoring
// pipeline into structured effect and condition records. It is a best-effort,
// offline collaborator: the engine never calls it at runtime, and fragments
// it cannot recognize are reported rather than guessed at.
package compile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hikari-lab/lessonsim/internal/game/card"
)

// Result is the outcome of compiling one description.
type Result struct {
	Effects    []card.Effect
	Conditions []card.Condition
	// Unrecognized keeps the fragments no pattern matched, for authoring
	// review. A non-empty list is not an error.
	Unrecognized []string
}

var fragmentSplitter = regexp.MustCompile(`[、\n]`)

// Patterns for effect fragments. Ordered: more specific patterns first.
var effectPatterns = []struct {
	re    *regexp.Regexp
	build func(m []string) card.Effect
}{
	{regexp.MustCompile(`^パラメータ\+(\d+)$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.ScoreFixed, Value: atoi(m[1])}
	}},
	{regexp.MustCompile(`^好印象の(\d+)[%％]分スコア増加$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.ScoreByGoodImpression, Ratio: float64(atoi(m[1])) / 100}
	}},
	{regexp.MustCompile(`^元気の(\d+)[%％]分スコア増加$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.ScoreByGenki, Ratio: float64(atoi(m[1])) / 100}
	}},
	{regexp.MustCompile(`^元気\+(\d+)$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.GenkiGain, Value: atoi(m[1])}
	}},
	{regexp.MustCompile(`^元気を半分にする$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.HalfGenki}
	}},
	{regexp.MustCompile(`^体力消費(\d+)$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.ConsumeHP, Value: atoi(m[1])}
	}},
	{regexp.MustCompile(`^体力回復(\d+)$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.HealHP, Value: atoi(m[1])}
	}},
	{regexp.MustCompile(`^好印象\+(\d+)$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.GoodImpressionUp, Value: atoi(m[1])}
	}},
	{regexp.MustCompile(`^やる気\+(\d+)$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.MotivationUp, Value: atoi(m[1])}
	}},
	{regexp.MustCompile(`^集中\+(\d+)$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.ConcentrationUp, Value: atoi(m[1])}
	}},
	{regexp.MustCompile(`^好調(\d+)ターン$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.GoodCondition, Duration: atoi(m[1])}
	}},
	{regexp.MustCompile(`^絶好調(\d+)ターン$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.ExcellentCondition, Duration: atoi(m[1])}
	}},
	{regexp.MustCompile(`^消費体力減少(\d+)ターン$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.CostReduction, Duration: atoi(m[1])}
	}},
	{regexp.MustCompile(`^消費体力削減(\d+)$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.ReduceHPCost, Value: atoi(m[1]), Duration: -1}
	}},
	{regexp.MustCompile(`^元気増加無効(\d+)ターン$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.NoGenkiGain, Duration: atoi(m[1])}
	}},
	{regexp.MustCompile(`^低下状態無効[（(](\d+)回[）)]$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.NoDebuff, Count: atoi(m[1])}
	}},
	{regexp.MustCompile(`^スキルカードを(\d+)枚引く$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.DrawCard, Value: atoi(m[1])}
	}},
	{regexp.MustCompile(`^スキルカード使用数追加\+(\d+)$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.AddCardPlayCount, Value: atoi(m[1])}
	}},
	{regexp.MustCompile(`^手札を全て入れ替える$`), func(m []string) card.Effect {
		return card.Effect{Kind: card.SwapHand}
	}},
}

// Patterns for condition prefixes of the form "〜の場合".
var conditionPatterns = []struct {
	re    *regexp.Regexp
	build func(m []string) card.Condition
}{
	{regexp.MustCompile(`^好印象が(\d+)以上の場合$`), func(m []string) card.Condition {
		return card.Condition{Type: card.CondGoodImpression, Compare: card.CompareGTE, Value: float64(atoi(m[1]))}
	}},
	{regexp.MustCompile(`^やる気が(\d+)以上の場合$`), func(m []string) card.Condition {
		return card.Condition{Type: card.CondMotivation, Compare: card.CompareGTE, Value: float64(atoi(m[1]))}
	}},
	{regexp.MustCompile(`^集中が(\d+)以上の場合$`), func(m []string) card.Condition {
		return card.Condition{Type: card.CondConcentration, Compare: card.CompareGTE, Value: float64(atoi(m[1]))}
	}},
	{regexp.MustCompile(`^元気が(\d+)以上の場合$`), func(m []string) card.Condition {
		return card.Condition{Type: card.CondGenki, Compare: card.CompareGTE, Value: float64(atoi(m[1]))}
	}},
	{regexp.MustCompile(`^体力が(\d+)[%％]以下の場合$`), func(m []string) card.Condition {
		return card.Condition{Type: card.CondHPRatio, Compare: card.CompareLTE, Value: float64(atoi(m[1])) / 100}
	}},
}

// Compile parses one card description. Fragments are split on 、 and
// newlines. A condition fragment ("〜の場合") guards every effect fragment
// that follows it until the next condition fragment; a leading run of
// unconditional fragments becomes plain effects and the card-level condition
// list stays empty unless the description opens with a condition that has no
// effects of its own.
func Compile(text string) Result {
	var res Result
	var guard []card.Condition

	for _, raw := range fragmentSplitter.Split(text, -1) {
		frag := strings.TrimSpace(raw)
		if frag == "" {
			continue
		}

		if cond, ok := matchCondition(frag); ok {
			guard = []card.Condition{cond}
			continue
		}

		ef, ok := matchEffect(frag)
		if !ok {
			res.Unrecognized = append(res.Unrecognized, frag)
			continue
		}
		if len(guard) > 0 {
			ef.Condition = append([]card.Condition(nil), guard...)
		}
		res.Effects = append(res.Effects, ef)
	}

	// A trailing condition with no effect after it is a card-level usage
	// condition.
	if len(res.Effects) == 0 && len(guard) > 0 {
		res.Conditions = guard
	}
	return res
}

func matchEffect(frag string) (card.Effect, bool) {
	for _, p := range effectPatterns {
		if m := p.re.FindStringSubmatch(frag); m != nil {
			return p.build(m), true
		}
	}
	return card.Effect{}, false
}

func matchCondition(frag string) (card.Condition, bool) {
	for _, p := range conditionPatterns {
		if m := p.re.FindStringSubmatch(frag); m != nil {
			return p.build(m), true
		}
	}
	return card.Condition{}, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
