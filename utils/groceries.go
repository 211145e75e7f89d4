package utils

import (
	"context"
	"time"

	"personalsite/apperr"
	"personalsite/models"

	"github.com/jackc/pgx/v5"
)

type GroceryStore struct {
	db      Querier
	timeout time.Duration
}

func NewGroceryStore(db Querier, timeout time.Duration) *GroceryStore {
	return &GroceryStore{db: db, timeout: timeout}
}

func (s *GroceryStore) ListGroceries(ctx context.Context) ([]models.GroceryItem, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	stmt := "SELECT id, description, quantity, created_at FROM grocery_items ORDER BY created_at, id"
	rows, err := s.db.Query(ctx, stmt)
	if err != nil {
		return nil, apperr.Persistence("query grocery items", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.GroceryItem])
	if err != nil {
		return nil, apperr.Persistence("scan grocery items", err)
	}
	return items, nil
}

func (s *GroceryStore) GetGrocery(ctx context.Context, id int64) (models.GroceryItem, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var item models.GroceryItem
	stmt := "SELECT id, description, quantity, created_at FROM grocery_items WHERE id = $1"
	err := s.db.QueryRow(ctx, stmt, id).Scan(&item.ID, &item.Description, &item.Quantity, &item.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return item, apperr.NotFound("grocery item", id)
		}
		return item, apperr.Persistence("get grocery item", err)
	}
	return item, nil
}

func (s *GroceryStore) CreateGrocery(ctx context.Context, description, quantity string) (models.GroceryItem, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	item := models.GroceryItem{Description: description, Quantity: quantity}
	stmt := "INSERT INTO grocery_items (description, quantity) VALUES ($1, $2) RETURNING id, created_at"
	if err := s.db.QueryRow(ctx, stmt, description, quantity).Scan(&item.ID, &item.CreatedAt); err != nil {
		return item, apperr.Persistence("insert grocery item", err)
	}
	return item, nil
}

func (s *GroceryStore) UpdateGrocery(ctx context.Context, id int64, description, quantity string) (models.GroceryItem, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var item models.GroceryItem
	stmt := `UPDATE grocery_items SET description = $1, quantity = $2 WHERE id = $3
		RETURNING id, description, quantity, created_at`
	err := s.db.QueryRow(ctx, stmt, description, quantity, id).Scan(&item.ID, &item.Description, &item.Quantity, &item.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return item, apperr.NotFound("grocery item", id)
		}
		return item, apperr.Persistence("update grocery item", err)
	}
	return item, nil
}

func (s *GroceryStore) DeleteGrocery(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	tag, err := s.db.Exec(ctx, "DELETE FROM grocery_items WHERE id = $1", id)
	if err != nil {
		return apperr.Persistence("delete grocery item", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("grocery item", id)
	}
	return nil
}
