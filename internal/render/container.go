// Package render projects an ordered entry subset onto the visible card container.
package render

import "github.com/nikbrunner/groupie/internal/model"

// Container is the visible, ordered set of cards.
// It holds pointers only; cards are moved between renders, never copied.
type Container struct {
	children []*model.Card
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{}
}

// Children returns the cards in display order.
func (c *Container) Children() []*model.Card {
	return c.children
}

// Len returns the number of visible cards.
func (c *Container) Len() int {
	return len(c.children)
}

// At returns the card at index i, or nil when out of range.
func (c *Container) At(i int) *model.Card {
	if i < 0 || i >= len(c.children) {
		return nil
	}
	return c.children[i]
}

// IndexOf returns the position of card, or -1 when it is not visible.
func (c *Container) IndexOf(card *model.Card) int {
	for i, child := range c.children {
		if child == card {
			return i
		}
	}
	return -1
}

// Clear detaches every card.
func (c *Container) Clear() {
	for i := range c.children {
		c.children[i] = nil
	}
	c.children = c.children[:0]
}

// Append attaches card at the end.
func (c *Container) Append(card *model.Card) {
	c.children = append(c.children, card)
}

// Render makes the container's child order match ordered exactly.
// Prior content is fully cleared first so no stale card remains.
func Render(c *Container, ordered []*model.ArtistEntry) {
	c.Clear()
	for _, entry := range ordered {
		if entry.Card != nil {
			c.Append(entry.Card)
		}
	}
}
