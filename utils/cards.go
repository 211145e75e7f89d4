package utils

import (
	"context"
	"time"

	"personalsite/apperr"
	"personalsite/models"

	"github.com/jackc/pgx/v5"
)

type CardStore struct {
	db      Querier
	timeout time.Duration
}

func NewCardStore(db Querier, timeout time.Duration) *CardStore {
	return &CardStore{db: db, timeout: timeout}
}

const cardColumns = "id, name, quantity, mana, art_large, created_at"

// ListCards returns the collection sorted by card name.
func (s *CardStore) ListCards(ctx context.Context) ([]models.CollectionCard, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.Query(ctx, "SELECT "+cardColumns+" FROM collection_cards ORDER BY name, id")
	if err != nil {
		return nil, apperr.Persistence("query cards", err)
	}
	cards, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CollectionCard])
	if err != nil {
		return nil, apperr.Persistence("scan cards", err)
	}
	return cards, nil
}

func (s *CardStore) GetCard(ctx context.Context, id int64) (models.CollectionCard, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.Query(ctx, "SELECT "+cardColumns+" FROM collection_cards WHERE id = $1", id)
	if err != nil {
		return models.CollectionCard{}, apperr.Persistence("get card", err)
	}
	card, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CollectionCard])
	if err != nil {
		if isNoRows(err) {
			return card, apperr.NotFound("card", id)
		}
		return card, apperr.Persistence("get card", err)
	}
	return card, nil
}

// CreateCard inserts an enriched card. ID and CreatedAt are filled in on
// the returned copy.
func (s *CardStore) CreateCard(ctx context.Context, card models.CollectionCard) (models.CollectionCard, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	stmt := `INSERT INTO collection_cards (name, quantity, mana, art_large)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := s.db.QueryRow(ctx, stmt, card.Name, card.Quantity, card.Mana, card.ArtLarge).Scan(&card.ID, &card.CreatedAt)
	if err != nil {
		return card, apperr.Persistence("insert card", err)
	}
	return card, nil
}

// UpdateCardQuantity changes only the quantity of a card.
func (s *CardStore) UpdateCardQuantity(ctx context.Context, id int64, quantity int) (models.CollectionCard, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.Query(ctx, "UPDATE collection_cards SET quantity = $1 WHERE id = $2 RETURNING "+cardColumns, quantity, id)
	if err != nil {
		return models.CollectionCard{}, apperr.Persistence("update card", err)
	}
	card, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CollectionCard])
	if err != nil {
		if isNoRows(err) {
			return card, apperr.NotFound("card", id)
		}
		return card, apperr.Persistence("update card", err)
	}
	return card, nil
}

func (s *CardStore) DeleteCard(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	tag, err := s.db.Exec(ctx, "DELETE FROM collection_cards WHERE id = $1", id)
	if err != nil {
		return apperr.Persistence("delete card", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("card", id)
	}
	return nil
}
