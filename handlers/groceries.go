package handlers

import (
	"context"
	"net/http"

	"personalsite/models"
	"personalsite/utils"

	"go.uber.org/zap"
)

type GroceryStore interface {
	ListGroceries(ctx context.Context) ([]models.GroceryItem, error)
	GetGrocery(ctx context.Context, id int64) (models.GroceryItem, error)
	CreateGrocery(ctx context.Context, description, quantity string) (models.GroceryItem, error)
	UpdateGrocery(ctx context.Context, id int64, description, quantity string) (models.GroceryItem, error)
	DeleteGrocery(ctx context.Context, id int64) error
}

type GroceryHandler struct {
	Store GroceryStore
	View  *Renderer
	Log   *zap.SugaredLogger
}

func (h *GroceryHandler) List(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	items, err := h.Store.ListGroceries(r.Context())
	if err != nil {
		writeError(w, log, err, "There was an issue loading your grocery list.")
		return
	}
	render(w, log, h.View, "grocery", models.PageData{Groceries: items})
}

func (h *GroceryHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	description, quantity, err := utils.ValidateGroceryInput(r.FormValue("description"), r.FormValue("quantity"))
	if err != nil {
		writeError(w, log, err, "There was an issue adding your item.")
		return
	}
	item, err := h.Store.CreateGrocery(r.Context(), description, quantity)
	if err != nil {
		writeError(w, log, err, "There was an issue adding your item.")
		return
	}
	log.Debugw("grocery item created", "id", item.ID)
	redirect(w, r, "/groceries")
}

func (h *GroceryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	id, err := parseID(r, "grocery item")
	if err != nil {
		writeError(w, log, err, "There was an issue loading that item.")
		return
	}
	item, err := h.Store.GetGrocery(r.Context(), id)
	if err != nil {
		writeError(w, log, err, "There was an issue loading that item.")
		return
	}
	render(w, log, h.View, "update_grocery", models.PageData{Grocery: &item})
}

func (h *GroceryHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	id, err := parseID(r, "grocery item")
	if err != nil {
		writeError(w, log, err, "There was an issue updating your item.")
		return
	}
	description, quantity, err := utils.ValidateGroceryInput(r.FormValue("description"), r.FormValue("quantity"))
	if err != nil {
		writeError(w, log, err, "There was an issue updating your item.")
		return
	}
	if _, err := h.Store.UpdateGrocery(r.Context(), id, description, quantity); err != nil {
		writeError(w, log, err, "There was an issue updating your item.")
		return
	}
	redirect(w, r, "/groceries")
}

func (h *GroceryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	id, err := parseID(r, "grocery item")
	if err != nil {
		writeError(w, log, err, "There was a problem deleting that item.")
		return
	}
	if err := h.Store.DeleteGrocery(r.Context(), id); err != nil {
		writeError(w, log, err, "There was a problem deleting that item.")
		return
	}
	redirect(w, r, "/groceries")
}
