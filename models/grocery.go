package models

import "time"

type GroceryItem struct {
	ID          int64     `db:"id"`
	Description string    `db:"description"`
	Quantity    string    `db:"quantity"`
	CreatedAt   time.Time `db:"created_at"`
}
