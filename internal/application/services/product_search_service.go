package services

import (
	"context"
	"log"

	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
)

// ProductSearchService serves the storefront search box: full-text search
// over the search index, hydrated into the same product-card shape the grid
// uses. Results keep the index's relevance order.
type ProductSearchService struct {
	searchRepo repositories.ProductSearchRepository
	hydrator   *ProductHydrator
}

// NewProductSearchService creates a new product search service
func NewProductSearchService(searchRepo repositories.ProductSearchRepository, hydrator *ProductHydrator) *ProductSearchService {
	return &ProductSearchService{
		searchRepo: searchRepo,
		hydrator:   hydrator,
	}
}

// Search returns product summaries matching the query, best match first
func (s *ProductSearchService) Search(ctx context.Context, query string, limit int) ([]entities.ProductSummary, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	ids, err := s.searchRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []entities.ProductSummary{}, nil
	}

	summaries, err := s.hydrator.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	// The index can briefly lag catalog deletes; hydration already dropped
	// ids without a backing row, just surface it for debugging.
	if len(summaries) < len(ids) {
		log.Printf("search returned %d ids, %d hydrated (index lagging catalog)", len(ids), len(summaries))
	}

	return summaries, nil
}
