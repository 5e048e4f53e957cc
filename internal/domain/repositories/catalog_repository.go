package repositories

import (
	"context"

	"github.com/lumiderm/storefront-backend/internal/domain/entities"
)

// CategoryRepository defines read access to categories
type CategoryRepository interface {
	// GetBySlug retrieves a category by its slug, returning a not-found
	// AppError when the slug does not resolve
	GetBySlug(ctx context.Context, slug string) (*entities.Category, error)

	// GetByIDs retrieves multiple categories by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Category, error)

	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]*entities.Category, error)
}

// FacetRepository defines read access to facets, facet options and the
// product/facet-option join table
type FacetRepository interface {
	// ListByCategory retrieves a category's facets ordered by sort_order
	ListByCategory(ctx context.Context, categoryID string) ([]*entities.Facet, error)

	// ListOptionsByFacetIDs retrieves the options of the given facets,
	// ordered by sort_order within each facet
	ListOptionsByFacetIDs(ctx context.Context, facetIDs []string) ([]*entities.FacetOption, error)

	// ListOptionsByIDs retrieves options by their own IDs. Unknown IDs are
	// omitted from the result, not reported as errors.
	ListOptionsByIDs(ctx context.Context, ids []string) ([]*entities.FacetOption, error)

	// ListProductLinks retrieves join rows matching the filter
	ListProductLinks(ctx context.Context, filter LinkFilter) ([]*entities.ProductFacetLink, error)
}

// LinkFilter narrows ListProductLinks. Empty slices mean "no constraint on
// that column"; at least one side should be set to avoid a full table read.
type LinkFilter struct {
	ProductIDs     []string
	FacetOptionIDs []string
}

// ProductRepository defines read access to products and their variants
type ProductRepository interface {
	// ListIDsByCategory retrieves the IDs of a category's products ordered
	// by product name ascending
	ListIDsByCategory(ctx context.Context, categoryID string) ([]string, error)

	// GetByIDs retrieves multiple products by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error)

	// GetBySlug retrieves a product by its slug, returning a not-found
	// AppError when the slug does not resolve
	GetBySlug(ctx context.Context, slug string) (*entities.Product, error)

	// ListVariantsByProductIDs retrieves every variant of the given products
	ListVariantsByProductIDs(ctx context.Context, productIDs []string) ([]*entities.ProductVariant, error)
}

// BrandRepository defines read access to brands
type BrandRepository interface {
	// GetByIDs retrieves multiple brands by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Brand, error)

	// List retrieves all brands ordered by name
	List(ctx context.Context) ([]*entities.Brand, error)
}

// ProductSearchRepository defines the full-text product search surface
// (e.g. Typesense)
type ProductSearchRepository interface {
	// Search returns the IDs of products matching the query, best first
	Search(ctx context.Context, query string, limit int) ([]string, error)

	// Index upserts a product document into the search index
	Index(ctx context.Context, product *entities.Product, brandName, categoryName string) error

	// Delete removes a product from the index
	Delete(ctx context.Context, id string) error
}
