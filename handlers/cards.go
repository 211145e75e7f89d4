package handlers

import (
	"context"
	"net/http"

	"personalsite/models"
	"personalsite/utils"

	"go.uber.org/zap"
)

type CardStore interface {
	ListCards(ctx context.Context) ([]models.CollectionCard, error)
	GetCard(ctx context.Context, id int64) (models.CollectionCard, error)
	CreateCard(ctx context.Context, card models.CollectionCard) (models.CollectionCard, error)
	UpdateCardQuantity(ctx context.Context, id int64, quantity int) (models.CollectionCard, error)
	DeleteCard(ctx context.Context, id int64) error
}

// CardEnricher resolves a user-typed card name into a storable card. It
// also returns the mana tokens it could not find a glyph for.
type CardEnricher interface {
	Enrich(ctx context.Context, name string, quantity int) (models.CollectionCard, []string, error)
}

type CardHandler struct {
	Store    CardStore
	Enricher CardEnricher
	View     *Renderer
	Log      *zap.SugaredLogger
}

func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	cards, err := h.Store.ListCards(r.Context())
	if err != nil {
		writeError(w, log, err, "There was an issue loading your collection.")
		return
	}
	render(w, log, h.View, "cards", models.PageData{Cards: cards})
}

// Create looks the submitted name up in the catalog and stores the
// canonical card. Nothing is stored if the lookup fails.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)
	const failMsg = "There was an issue adding your card."

	name, err := utils.ValidateCardName(r.FormValue("name"))
	if err != nil {
		writeError(w, log, err, failMsg)
		return
	}
	quantity, err := utils.ParseCardQuantity(r.FormValue("quantity"))
	if err != nil {
		writeError(w, log, err, failMsg)
		return
	}

	card, unmatched, err := h.Enricher.Enrich(r.Context(), name, quantity)
	if err != nil {
		writeError(w, log, err, failMsg)
		return
	}
	if len(unmatched) > 0 {
		log.Warnw("mana symbols missing from catalog", "card", card.Name, "tokens", unmatched)
	}
	// The canonical name can be longer than what was typed.
	card.Name, err = utils.ValidateCardName(card.Name)
	if err != nil {
		writeError(w, log, err, failMsg)
		return
	}

	card, err = h.Store.CreateCard(r.Context(), card)
	if err != nil {
		writeError(w, log, err, failMsg)
		return
	}
	log.Debugw("card added", "id", card.ID, "name", card.Name)
	redirect(w, r, "/cards")
}

func (h *CardHandler) Edit(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	id, err := parseID(r, "card")
	if err != nil {
		writeError(w, log, err, "There was an issue loading that card.")
		return
	}
	card, err := h.Store.GetCard(r.Context(), id)
	if err != nil {
		writeError(w, log, err, "There was an issue loading that card.")
		return
	}
	render(w, log, h.View, "update_card", models.PageData{Card: &card})
}

// Update changes the quantity only. Name, mana and art stay as looked up.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	id, err := parseID(r, "card")
	if err != nil {
		writeError(w, log, err, "There was an issue updating your card.")
		return
	}
	quantity, err := utils.ParseCardQuantity(r.FormValue("quantity"))
	if err != nil {
		writeError(w, log, err, "There was an issue updating your card.")
		return
	}
	if _, err := h.Store.UpdateCardQuantity(r.Context(), id, quantity); err != nil {
		writeError(w, log, err, "There was an issue updating your card.")
		return
	}
	redirect(w, r, "/cards")
}

func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	id, err := parseID(r, "card")
	if err != nil {
		writeError(w, log, err, "There was a problem deleting that card.")
		return
	}
	if err := h.Store.DeleteCard(r.Context(), id); err != nil {
		writeError(w, log, err, "There was a problem deleting that card.")
		return
	}
	redirect(w, r, "/cards")
}
