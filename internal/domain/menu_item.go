package domain

import "time"

// MenuItem описывает позицию меню ресторана.
type MenuItem struct {
	ID          int64
	Name        string
	Description *string
	PriceCents  int64 // Цена хранится в центах
	Category    string
	DietaryTag  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsActive    bool
}

func NewMenuItem(name string, description *string, priceCents int64, category string, dietaryTag *string) *MenuItem {
	return &MenuItem{
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
		Category:    category,
		DietaryTag:  dietaryTag,
		IsActive:    true,
	}
}
