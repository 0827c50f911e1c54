package model

import (
	"github.com/google/uuid"
	"github.com/nikbrunner/groupie/internal/overlay"
)

// Card is the renderable unit for one artist.
// Cards are created once at extraction and never copied; views hold pointers.
type Card struct {
	ID     string
	Detail Detail

	label *overlay.Label
}

// NewCard creates a Card with a generated ID.
func NewCard(detail Detail) *Card {
	return &Card{
		ID:     uuid.NewString(),
		Detail: detail,
	}
}

// Label returns the card's track overlay, creating it on first use.
func (c *Card) Label() *overlay.Label {
	if c.label == nil {
		c.label = overlay.New()
	}
	return c.label
}

// HasLabel reports whether the overlay has been created.
func (c *Card) HasLabel() bool {
	return c.label != nil
}

// LabelVisible reports whether the overlay exists and is shown.
func (c *Card) LabelVisible() bool {
	return c.label != nil && c.label.Visible()
}
