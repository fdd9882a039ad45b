// Package carddb loads the card roster the engine consumes, either from a
// JSON file or from the Postgres table populated by scripts/import_cards.go.
package carddb

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hikari-lab/lessonsim/internal/game/card"
)

// LoadFile reads a JSON card database. The file is a flat array of card
// records conforming to the engine schema.
func LoadFile(path string) ([]card.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card database %s: %w", path, err)
	}

	var cards []card.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parse card database %s: %w", path, err)
	}

	if err := validate(cards); err != nil {
		return nil, fmt.Errorf("card database %s: %w", path, err)
	}
	return cards, nil
}

func validate(cards []card.Card) error {
	seen := make(map[string]bool, len(cards))
	for i, c := range cards {
		if c.ID == "" {
			return fmt.Errorf("card %d: missing id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate card id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
