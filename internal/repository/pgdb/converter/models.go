package converter

import "time"

// MenuItemModel представляет запись таблицы menu_items в PostgreSQL.
type MenuItemModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	PriceCents  int64     `db:"price_cents"`
	Category    string    `db:"category"`
	DietaryTag  *string   `db:"dietary_tag"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	IsActive    bool      `db:"is_active"`
}
