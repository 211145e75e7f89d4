package models

import (
	"strings"
	"time"
)

// CollectionCard is one entry of the card collection. Name, Mana and
// ArtLarge come from the card lookup, only Quantity is user supplied.
type CollectionCard struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Quantity  int       `db:"quantity"`
	Mana      string    `db:"mana"`
	ArtLarge  string    `db:"art_large"`
	CreatedAt time.Time `db:"created_at"`
}

// ManaGlyphs splits the stored comma-joined glyph URLs.
func (c CollectionCard) ManaGlyphs() []string {
	if c.Mana == "" {
		return nil
	}
	return strings.Split(c.Mana, ",")
}
