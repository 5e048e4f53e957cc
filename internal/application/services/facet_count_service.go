package services

import (
	"context"

	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
	"github.com/lumiderm/storefront-backend/pkg/sets"
)

// FacetCountService computes, for one category, every facet with its options
// annotated by the number of matching products given the selections made in
// the *other* facets. A facet's own selection never narrows its own counts;
// without that exclusion a shopper could never see how many products match a
// sibling option of one they already picked.
type FacetCountService struct {
	categoryRepo repositories.CategoryRepository
	facetRepo    repositories.FacetRepository
	productRepo  repositories.ProductRepository
}

// NewFacetCountService creates a new facet count service
func NewFacetCountService(
	categoryRepo repositories.CategoryRepository,
	facetRepo repositories.FacetRepository,
	productRepo repositories.ProductRepository,
) *FacetCountService {
	return &FacetCountService{
		categoryRepo: categoryRepo,
		facetRepo:    facetRepo,
		productRepo:  productRepo,
	}
}

// GetFacetCounts resolves the category by slug (not-found error when absent)
// and returns its facets in sort order, each option carrying the count of
// category products that match it under the current cross-facet selection.
// Selected option ids that do not belong to this category's facets are
// silently ignored.
func (s *FacetCountService) GetFacetCounts(ctx context.Context, categorySlug string, selectedOptionIDs []string) ([]entities.FacetWithCounts, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	facets, err := s.facetRepo.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	if len(facets) == 0 {
		return []entities.FacetWithCounts{}, nil
	}

	facetIDs := make([]string, len(facets))
	for i, f := range facets {
		facetIDs[i] = f.ID
	}

	options, err := s.facetRepo.ListOptionsByFacetIDs(ctx, facetIDs)
	if err != nil {
		return nil, err
	}

	optionsByFacet := make(map[string][]*entities.FacetOption, len(facets))
	optionByID := make(map[string]*entities.FacetOption, len(options))
	for _, o := range options {
		optionsByFacet[o.FacetID] = append(optionsByFacet[o.FacetID], o)
		optionByID[o.ID] = o
	}

	productIDs, err := s.productRepo.ListIDsByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	// No products: every count is zero, no need to touch the join table.
	if len(productIDs) == 0 {
		return assembleZeroCounts(facets, optionsByFacet), nil
	}

	optionIDs := make([]string, len(options))
	for i, o := range options {
		optionIDs[i] = o.ID
	}
	links, err := s.facetRepo.ListProductLinks(ctx, repositories.LinkFilter{FacetOptionIDs: optionIDs})
	if err != nil {
		return nil, err
	}

	productsByOption := make(map[string]sets.Set[string], len(options))
	for _, link := range links {
		if productsByOption[link.FacetOptionID] == nil {
			productsByOption[link.FacetOptionID] = sets.Set[string]{}
		}
		productsByOption[link.FacetOptionID].Add(link.ProductID)
	}

	// Selection context: selected option ids grouped by the facet that owns
	// them. Ids that don't resolve to one of this category's options are
	// dropped here, which also makes stale URLs harmless.
	selectedByFacet := make(map[string][]string)
	for _, id := range selectedOptionIDs {
		option, ok := optionByID[id]
		if !ok {
			continue
		}
		selectedByFacet[option.FacetID] = append(selectedByFacet[option.FacetID], id)
	}

	allProducts := sets.New(productIDs...)

	result := make([]entities.FacetWithCounts, 0, len(facets))
	for _, facet := range facets {
		base := s.baseSetExcluding(facet.ID, facets, selectedByFacet, productsByOption, allProducts)

		facetOptions := optionsByFacet[facet.ID]
		withCounts := make([]entities.OptionWithCount, 0, len(facetOptions))
		for _, option := range facetOptions {
			count := 0
			if base.Len() > 0 {
				count = sets.Intersect(base, productsByOption[option.ID]).Len()
			}
			withCounts = append(withCounts, entities.OptionWithCount{
				ID:    option.ID,
				Label: option.Label,
				Value: option.Value,
				Count: count,
			})
		}

		result = append(result, entities.FacetWithCounts{
			ID:      facet.ID,
			Name:    facet.Name,
			Slug:    facet.Slug,
			Options: withCounts,
		})
	}

	return result, nil
}

// baseSetExcluding computes the product set against which one facet's option
// counts are taken: all category products, narrowed by every *other* facet's
// selection (OR within each of those facets, AND across them). The facet's
// own selection is excluded.
func (s *FacetCountService) baseSetExcluding(
	facetID string,
	facets []*entities.Facet,
	selectedByFacet map[string][]string,
	productsByOption map[string]sets.Set[string],
	allProducts sets.Set[string],
) sets.Set[string] {
	base := allProducts
	for _, other := range facets {
		if other.ID == facetID {
			continue
		}
		selected, ok := selectedByFacet[other.ID]
		if !ok {
			continue
		}

		optionSets := make([]sets.Set[string], 0, len(selected))
		for _, optionID := range selected {
			optionSets = append(optionSets, productsByOption[optionID])
		}

		base = sets.Intersect(base, sets.Union(optionSets...))
		if base.Len() == 0 {
			break
		}
	}
	return base
}

func assembleZeroCounts(facets []*entities.Facet, optionsByFacet map[string][]*entities.FacetOption) []entities.FacetWithCounts {
	result := make([]entities.FacetWithCounts, 0, len(facets))
	for _, facet := range facets {
		facetOptions := optionsByFacet[facet.ID]
		withCounts := make([]entities.OptionWithCount, 0, len(facetOptions))
		for _, option := range facetOptions {
			withCounts = append(withCounts, entities.OptionWithCount{
				ID:    option.ID,
				Label: option.Label,
				Value: option.Value,
				Count: 0,
			})
		}
		result = append(result, entities.FacetWithCounts{
			ID:      facet.ID,
			Name:    facet.Name,
			Slug:    facet.Slug,
			Options: withCounts,
		})
	}
	return result
}
