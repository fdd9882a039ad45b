package deck

import (
	"testing"

	"github.com/hikari-lab/lessonsim/internal/game/card"
)

func mkCards(ids ...string) []card.Card {
	out := make([]card.Card, len(ids))
	for i, id := range ids {
		out[i] = card.Card{ID: id, Name: id}
	}
	return out
}

func idSet(cards []card.Card) map[string]int {
	m := make(map[string]int)
	for _, c := range cards {
		m[c.ID]++
	}
	return m
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	in := mkCards("a", "b", "c", "d", "e")
	orig := append([]card.Card(nil), in...)

	out := Shuffle(in)

	for i := range in {
		if in[i].ID != orig[i].ID {
			t.Fatal("Shuffle mutated its input")
		}
	}
	if len(out) != len(in) {
		t.Fatalf("Expected %d cards, got %d", len(in), len(out))
	}
	got := idSet(out)
	for _, c := range in {
		if got[c.ID] != 1 {
			t.Errorf("Card %s count = %d after shuffle", c.ID, got[c.ID])
		}
	}
}

func TestDraw_SimpleDraw(t *testing.T) {
	pile := mkCards("a", "b", "c")
	res := Draw(pile, nil, 2, nil)

	if len(res.Drawn) != 2 {
		t.Fatalf("Expected 2 drawn, got %d", len(res.Drawn))
	}
	// Deck order is next-to-draw at the end.
	if res.Drawn[0].ID != "c" || res.Drawn[1].ID != "b" {
		t.Errorf("Expected to draw c then b, got %s then %s", res.Drawn[0].ID, res.Drawn[1].ID)
	}
	if len(res.Deck) != 1 || res.Deck[0].ID != "a" {
		t.Errorf("Expected deck [a], got %v", res.Deck)
	}
}

func TestDraw_ReshuffleConservesCards(t *testing.T) {
	pile := mkCards("a")
	discard := mkCards("b", "c", "d", "e")

	res := Draw(pile, discard, 3, nil)

	if len(res.Drawn) != 3 {
		t.Fatalf("Expected 3 drawn after reshuffle, got %d", len(res.Drawn))
	}

	// Multiset of deck+discard+drawn must equal the 5 inputs.
	total := idSet(res.Deck)
	for id, n := range idSet(res.Discard) {
		total[id] += n
	}
	for id, n := range idSet(res.Drawn) {
		total[id] += n
	}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if total[id] != 1 {
			t.Errorf("Card %s count = %d, want 1", id, total[id])
		}
	}
	if len(res.Deck)+len(res.Discard) != 2 {
		t.Errorf("Expected 2 cards left outside the hand, got %d", len(res.Deck)+len(res.Discard))
	}
}

func TestDraw_UniqueDivertedToDiscard(t *testing.T) {
	unique := card.Card{ID: "u1", Name: "u1", Unique: true}
	pile := []card.Card{unique, {ID: "a", Name: "a"}}
	hand := []card.Card{unique}

	res := Draw(pile, nil, 2, hand)

	if len(res.Drawn) != 1 || res.Drawn[0].ID != "a" {
		t.Fatalf("Expected only 'a' drawn, got %v", res.Drawn)
	}
	if idSet(res.Discard)["u1"] != 1 {
		t.Errorf("Expected blocked unique diverted to discard, got %v", res.Discard)
	}
}

func TestDraw_AllBlockedUniquesTerminates(t *testing.T) {
	unique := card.Card{ID: "u1", Name: "u1", Unique: true}
	pile := []card.Card{unique, unique, unique}
	hand := []card.Card{unique}

	// Must return fewer cards than requested rather than spin forever.
	res := Draw(pile, nil, 2, hand)
	if len(res.Drawn) != 0 {
		t.Errorf("Expected no cards drawn, got %d", len(res.Drawn))
	}
}

func TestDraw_ResultSlicesAreFresh(t *testing.T) {
	pile := mkCards("a", "b")
	discard := mkCards("c")

	res := Draw(pile, discard, 1, nil)
	res.Deck = append(res.Deck, card.Card{ID: "z"})
	res.Discard = append(res.Discard, card.Card{ID: "z"})

	if len(pile) != 2 || len(discard) != 1 {
		t.Error("Draw result aliased its inputs")
	}
	if pile[0].ID != "a" || pile[1].ID != "b" || discard[0].ID != "c" {
		t.Error("Draw mutated its inputs")
	}
}
