package services

import (
	"context"

	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
	"github.com/lumiderm/storefront-backend/pkg/sets"
)

// Pagination bounds for the product grid
const (
	MinPageSize     = 12
	MaxPageSize     = 48
	DefaultPageSize = 24
)

// FilteredProductsResult is the product-grid response shape
type FilteredProductsResult struct {
	Products []entities.ProductSummary `json:"products"`
	Offset   int                       `json:"offset"`
	Limit    int                       `json:"limit"`
	Total    int                       `json:"total"`
	HasMore  bool                      `json:"hasMore"`
}

// ProductFilterService resolves the page of category products matching a set
// of selected facet options: OR across options of the same facet, AND across
// facets. Both the filtered and unfiltered paths page over the category's
// name-ordered product list, so pagination stays stable when filters toggle.
type ProductFilterService struct {
	categoryRepo repositories.CategoryRepository
	facetRepo    repositories.FacetRepository
	productRepo  repositories.ProductRepository
	hydrator     *ProductHydrator
}

// NewProductFilterService creates a new product filter service
func NewProductFilterService(
	categoryRepo repositories.CategoryRepository,
	facetRepo repositories.FacetRepository,
	productRepo repositories.ProductRepository,
	hydrator *ProductHydrator,
) *ProductFilterService {
	return &ProductFilterService{
		categoryRepo: categoryRepo,
		facetRepo:    facetRepo,
		productRepo:  productRepo,
		hydrator:     hydrator,
	}
}

// GetFilteredProducts resolves the category by slug (not-found error when
// absent) and returns the requested page of matching products with
// pagination metadata. An empty selection browses the whole category.
// Selected ids that don't resolve to an existing option are dropped; if none
// survive, the result is empty rather than an error, since filter state
// round-trips through shareable URLs that may go stale.
func (s *ProductFilterService) GetFilteredProducts(ctx context.Context, categorySlug string, selectedOptionIDs []string, offset, limit int) (*FilteredProductsResult, error) {
	offset, limit = clampPage(offset, limit)

	category, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	categoryProductIDs, err := s.productRepo.ListIDsByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	matchingIDs := categoryProductIDs
	if len(selectedOptionIDs) > 0 {
		candidates, err := s.candidateSet(ctx, selectedOptionIDs)
		if err != nil {
			return nil, err
		}
		// Restricting to the category's own ordered id list both guards
		// against cross-category option leakage and gives the filtered
		// page the same name ordering as the unfiltered one.
		matchingIDs = sets.FilterOrdered(categoryProductIDs, candidates)
	}

	total := len(matchingIDs)
	pageIDs := slicePage(matchingIDs, offset, limit)

	products, err := s.hydrator.Summaries(ctx, pageIDs)
	if err != nil {
		return nil, err
	}

	return &FilteredProductsResult{
		Products: products,
		Offset:   offset,
		Limit:    limit,
		Total:    total,
		HasMore:  offset+len(products) < total,
	}, nil
}

// candidateSet resolves the selected option ids into the product-id set
// satisfying OR-within-facet / AND-across-facets
func (s *ProductFilterService) candidateSet(ctx context.Context, selectedOptionIDs []string) (sets.Set[string], error) {
	options, err := s.facetRepo.ListOptionsByIDs(ctx, selectedOptionIDs)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		// every supplied id was stale
		return sets.Set[string]{}, nil
	}

	optionIDs := make([]string, len(options))
	optionFacet := make(map[string]string, len(options))
	for i, o := range options {
		optionIDs[i] = o.ID
		optionFacet[o.ID] = o.FacetID
	}

	links, err := s.facetRepo.ListProductLinks(ctx, repositories.LinkFilter{FacetOptionIDs: optionIDs})
	if err != nil {
		return nil, err
	}

	// One product-id set per facet, OR-merged over that facet's selected
	// options.
	productsByFacet := make(map[string]sets.Set[string])
	for _, o := range options {
		if productsByFacet[o.FacetID] == nil {
			productsByFacet[o.FacetID] = sets.Set[string]{}
		}
	}
	for _, link := range links {
		facetID := optionFacet[link.FacetOptionID]
		productsByFacet[facetID].Add(link.ProductID)
	}

	facetSets := make([]sets.Set[string], 0, len(productsByFacet))
	for _, set := range productsByFacet {
		facetSets = append(facetSets, set)
	}

	return sets.Intersect(facetSets...), nil
}

// clampPage normalizes pagination inputs: negative offsets become 0, a
// missing limit becomes the default, out-of-range limits are clamped
func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit < MinPageSize:
		limit = MinPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	return offset, limit
}

func slicePage(ids []string, offset, limit int) []string {
	if offset >= len(ids) {
		return []string{}
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end]
}
