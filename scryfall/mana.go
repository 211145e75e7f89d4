package scryfall

import (
	"context"
	"regexp"
	"strings"

	"personalsite/models"
)

var manaToken = regexp.MustCompile(`\{[^{}]*\}`)

// ParseManaCost splits a mana cost into its bracketed symbols, braces
// included: "{2}{W}{W}" gives ["{2}" "{W}" "{W}"]. Text outside braces,
// such as the " // " between split card halves, is ignored.
func ParseManaCost(cost string) []string {
	return manaToken.FindAllString(cost, -1)
}

// ManaGlyphs maps each token to its glyph URL, preserving order and
// repeats. Tokens missing from the catalog are returned separately.
func ManaGlyphs(tokens []string, symbols []Symbol) (glyphs, unmatched []string) {
	byToken := make(map[string]string, len(symbols))
	for _, s := range symbols {
		byToken[s.Symbol] = s.SVGURI
	}
	for _, tok := range tokens {
		if uri, ok := byToken[tok]; ok {
			glyphs = append(glyphs, uri)
		} else {
			unmatched = append(unmatched, tok)
		}
	}
	return glyphs, unmatched
}

// Enrich looks name up and builds the collection entry to store. The
// returned tokens had no glyph in the symbol catalog and were left out of
// Mana.
func (c *Client) Enrich(ctx context.Context, name string, quantity int) (models.CollectionCard, []string, error) {
	info, err := c.LookupCard(ctx, name)
	if err != nil {
		return models.CollectionCard{}, nil, err
	}

	tokens := ParseManaCost(info.ManaCost)
	var glyphs, unmatched []string
	if len(tokens) > 0 {
		symbols, err := c.Symbols(ctx)
		if err != nil {
			return models.CollectionCard{}, nil, err
		}
		glyphs, unmatched = ManaGlyphs(tokens, symbols)
	}

	card := models.CollectionCard{
		Name:     info.Name,
		Quantity: quantity,
		Mana:     strings.Join(glyphs, ","),
		ArtLarge: info.ArtLarge,
	}
	return card, unmatched, nil
}
