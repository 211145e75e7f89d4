// Package scryfall looks cards and mana symbols up in the Scryfall catalog
// and turns a fuzzy card name into a collection entry.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"personalsite/apperr"

	"go.uber.org/zap"
)

const userAgent = "personalsite/1.0"

// maxBody caps how much of a response is read. Card payloads are a few
// kilobytes, the symbology list is well under a megabyte.
const maxBody = 4 << 20

// Symbol is one entry of the symbology catalog.
type Symbol struct {
	Symbol string `json:"symbol"`
	SVGURI string `json:"svg_uri"`
}

// CardInfo is the validated subset of a card lookup.
type CardInfo struct {
	Name     string
	ArtLarge string
	ManaCost string
}

// SymbolCache stores the symbology catalog between requests.
type SymbolCache interface {
	GetSymbols(ctx context.Context) ([]Symbol, bool, error)
	SetSymbols(ctx context.Context, symbols []Symbol) error
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   SymbolCache
	log     *zap.SugaredLogger
}

// NewClient returns a client for the API at baseURL. cache and log may be
// nil.
func NewClient(baseURL string, timeout time.Duration, cache SymbolCache, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
		log:     log,
	}
}

type imageURIs struct {
	Large string `json:"large"`
}

type cardFace struct {
	Name      string     `json:"name"`
	ManaCost  *string    `json:"mana_cost"`
	ImageURIs *imageURIs `json:"image_uris"`
}

type cardResponse struct {
	Object    string     `json:"object"`
	Name      string     `json:"name"`
	ManaCost  *string    `json:"mana_cost"`
	ImageURIs *imageURIs `json:"image_uris"`
	CardFaces []cardFace `json:"card_faces"`
}

type symbologyResponse struct {
	Object string   `json:"object"`
	Data   []Symbol `json:"data"`
}

type errorResponse struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

// LookupCard finds a card by fuzzy name. Multi-faced cards without
// top-level art or mana cost take them from their first face.
func (c *Client) LookupCard(ctx context.Context, fuzzyName string) (CardInfo, error) {
	q := url.Values{"fuzzy": {fuzzyName}}
	var resp cardResponse
	if err := c.getJSON(ctx, "/cards/named?"+q.Encode(), &resp); err != nil {
		return CardInfo{}, err
	}
	return resp.validate()
}

func (r cardResponse) validate() (CardInfo, error) {
	if r.Object != "" && r.Object != "card" {
		return CardInfo{}, apperr.Enrichment(fmt.Sprintf("card lookup returned a %q object", r.Object), nil)
	}
	if strings.TrimSpace(r.Name) == "" {
		return CardInfo{}, apperr.Enrichment("card lookup response is missing name", nil)
	}

	info := CardInfo{Name: r.Name}
	if r.ImageURIs != nil {
		info.ArtLarge = r.ImageURIs.Large
	}
	mana := r.ManaCost
	if len(r.CardFaces) > 0 {
		face := r.CardFaces[0]
		if info.ArtLarge == "" && face.ImageURIs != nil {
			info.ArtLarge = face.ImageURIs.Large
		}
		if mana == nil {
			mana = face.ManaCost
		}
	}

	if info.ArtLarge == "" {
		return CardInfo{}, apperr.Enrichment("card lookup response is missing image_uris.large", nil)
	}
	if mana == nil {
		return CardInfo{}, apperr.Enrichment("card lookup response is missing mana_cost", nil)
	}
	info.ManaCost = *mana
	return info, nil
}

// ListSymbols fetches the symbology catalog from the API, bypassing the
// cache. Entries without a glyph (svg_uri is nullable) are left out, so
// their tokens end up unmatched.
func (c *Client) ListSymbols(ctx context.Context) ([]Symbol, error) {
	var resp symbologyResponse
	if err := c.getJSON(ctx, "/symbology", &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, apperr.Enrichment("symbology response is missing data", nil)
	}

	symbols := make([]Symbol, 0, len(resp.Data))
	for _, s := range resp.Data {
		if s.Symbol == "" || s.SVGURI == "" {
			c.log.Debugw("skipping symbol without glyph", "symbol", s.Symbol)
			continue
		}
		symbols = append(symbols, s)
	}
	if len(symbols) == 0 {
		return nil, apperr.Enrichment("symbology response has no usable symbols", nil)
	}
	return symbols, nil
}

// Symbols returns the symbology catalog, from the cache when possible.
// Cache failures are logged and never fail the call.
func (c *Client) Symbols(ctx context.Context) ([]Symbol, error) {
	if c.cache != nil {
		symbols, ok, err := c.cache.GetSymbols(ctx)
		switch {
		case err != nil:
			c.log.Warnw("symbol cache read failed", "error", err)
		case ok:
			return symbols, nil
		}
	}

	symbols, err := c.ListSymbols(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.SetSymbols(ctx, symbols); err != nil {
			c.log.Warnw("symbol cache write failed", "error", err)
		}
	}
	return symbols, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperr.Enrichment("build catalog request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Enrichment("catalog service unreachable", err)
	}
	defer resp.Body.Close()
	c.log.Debugw("catalog request", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return apperr.Enrichment("read catalog response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Details != "" {
			return apperr.Enrichment(e.Details, nil)
		}
		return apperr.Enrichment(fmt.Sprintf("catalog service returned status %d", resp.StatusCode), nil)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperr.Enrichment("decode catalog response", err)
	}
	return nil
}
