package entities

import "time"

// Product represents a sellable catalog item. Pricing and imagery live on
// the variants; the product row itself carries only descriptive data.
type Product struct {
	ID          string    `json:"id" db:"id"`
	CategoryID  string    `json:"category_id" db:"category_id"`
	BrandID     string    `json:"brand_id" db:"brand_id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Tags        []string  `json:"tags,omitempty" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductVariant is one purchasable variant of a product (shade, size).
// CompareAtPrice is the optional strike-through price.
type ProductVariant struct {
	ID             string   `json:"id" db:"id"`
	ProductID      string   `json:"product_id" db:"product_id"`
	Price          float64  `json:"price" db:"price"`
	CompareAtPrice *float64 `json:"compare_at_price,omitempty" db:"compare_at_price"`
	Images         []string `json:"images" db:"-"`
}

// Brand represents a cosmetics brand referenced by products
type Brand struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

// ProductSummary is the product-card shape served to the storefront grid.
// Price, CompareAtPrice and Image come from the cheapest variant.
type ProductSummary struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Description    string   `json:"description"`
	Brand          string   `json:"brand"`
	Category       string   `json:"category"`
	Image          string   `json:"image"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compareAtPrice"`
}

// ProductDetail is the product-page shape: the product row plus resolved
// brand/category names and every variant.
type ProductDetail struct {
	Product
	Brand    string           `json:"brand"`
	Category string           `json:"category"`
	Variants []ProductVariant `json:"variants"`
}
