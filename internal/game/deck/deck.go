// Package deck holds the shuffle and draw primitives. Draws reshuffle the
// discard pile back into the deck when the deck runs dry, and divert unique
// cards that would duplicate one already held.
package deck

import (
	"math/rand"

	"github.com/hikari-lab/lessonsim/internal/game/card"
)

// Shuffle returns a uniform random permutation of cards. The input slice is
// not mutated.
func Shuffle(cards []card.Card) []card.Card {
	out := append([]card.Card(nil), cards...)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Result carries the three piles produced by a draw. All slices are fresh;
// none alias the inputs.
type Result struct {
	Deck    []card.Card
	Discard []card.Card
	Drawn   []card.Card
}

// Draw pops up to count cards from the end of pile, reshuffling discard into
// the pile whenever it empties mid-draw. A unique card whose ID is already in
// currentHand, or already drawn during this call, is diverted to the discard
// pile instead and drawing continues.
//
// The attempt budget of count*2+10 bounds the loop when the remaining cards
// are all blocked uniques; in that case fewer than count cards are returned.
func Draw(pile, discard []card.Card, count int, currentHand []card.Card) Result {
	deckPile := append([]card.Card(nil), pile...)
	discardPile := append([]card.Card(nil), discard...)
	drawn := make([]card.Card, 0, count)

	attempts := count*2 + 10
	for len(drawn) < count && attempts > 0 {
		attempts--
		if len(deckPile) == 0 {
			if len(discardPile) == 0 {
				break
			}
			deckPile = Shuffle(discardPile)
			discardPile = nil
		}
		c := deckPile[len(deckPile)-1]
		deckPile = deckPile[:len(deckPile)-1]

		if c.Unique && (containsID(currentHand, c.ID) || containsID(drawn, c.ID)) {
			discardPile = append(discardPile, c)
			continue
		}
		drawn = append(drawn, c)
	}

	return Result{Deck: deckPile, Discard: discardPile, Drawn: drawn}
}

func containsID(cards []card.Card, id string) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}
