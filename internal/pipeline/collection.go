// Package pipeline filters and orders a section's cards without touching the
// cards themselves. Display order and visibility are explicit values owned by
// SectionState; renderers only consume them.
package pipeline

import "github.com/glabrego/catalog-cli/internal/catalog"

// Collection is a read-only view over one section's cards in markup order.
type Collection struct {
	cards []catalog.Card
}

func NewCollection(cards []catalog.Card) Collection {
	return Collection{cards: append([]catalog.Card(nil), cards...)}
}

func (c Collection) Len() int {
	return len(c.cards)
}

func (c Collection) At(i int) catalog.Card {
	return c.cards[i]
}

func (c Collection) Category(i int) string {
	return c.cards[i].Category
}

func (c Collection) Metric(i int) (int64, bool) {
	return c.cards[i].Metric, c.cards[i].HasMetric
}

// Categories lists distinct categories in first-seen order.
func (c Collection) Categories() []string {
	seen := make(map[string]struct{}, len(c.cards))
	out := make([]string, 0, 4)
	for _, card := range c.cards {
		if card.Category == "" {
			continue
		}
		if _, ok := seen[card.Category]; ok {
			continue
		}
		seen[card.Category] = struct{}{}
		out = append(out, card.Category)
	}
	return out
}

// IdentityOrder returns the markup order 0..n-1.
func (c Collection) IdentityOrder() []int {
	order := make([]int, len(c.cards))
	for i := range order {
		order[i] = i
	}
	return order
}
