package entities

import "time"

// Category represents a top-level product grouping (e.g. Skincare, Makeup).
// A product belongs to at most one category; facets are scoped to a category.
type Category struct {
	ID          string    `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
