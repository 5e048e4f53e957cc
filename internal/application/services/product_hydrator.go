package services

import (
	"context"

	"github.com/lumiderm/storefront-backend/internal/application/loaders"
	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
)

// ProductHydrator turns product ids into storefront-ready shapes. All
// related-entity lookups are batched: one products query, one variants
// query, and one loader batch each for brands and categories.
type ProductHydrator struct {
	productRepo repositories.ProductRepository
	loaders     *loaders.Loaders
}

// NewProductHydrator creates a new product hydrator
func NewProductHydrator(productRepo repositories.ProductRepository, loaders *loaders.Loaders) *ProductHydrator {
	return &ProductHydrator{
		productRepo: productRepo,
		loaders:     loaders,
	}
}

// Summaries hydrates the given product ids into product-card summaries,
// preserving the order of the id slice. Ids that no longer resolve to a
// product are skipped.
func (h *ProductHydrator) Summaries(ctx context.Context, ids []string) ([]entities.ProductSummary, error) {
	if len(ids) == 0 {
		return []entities.ProductSummary{}, nil
	}

	products, err := h.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	variants, err := h.productRepo.ListVariantsByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	variantsByProduct := groupVariants(variants)

	productByID := make(map[string]*entities.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	brandNames, categoryNames, err := h.resolveNames(ctx, products)
	if err != nil {
		return nil, err
	}

	summaries := make([]entities.ProductSummary, 0, len(ids))
	for _, id := range ids {
		product, ok := productByID[id]
		if !ok {
			continue
		}

		summary := entities.ProductSummary{
			ID:          product.ID,
			Name:        product.Name,
			Slug:        product.Slug,
			Description: product.Description,
			Brand:       brandNames[product.BrandID],
			Category:    categoryNames[product.CategoryID],
		}

		if rep := cheapestVariant(variantsByProduct[id]); rep != nil {
			summary.Price = rep.Price
			summary.CompareAtPrice = rep.CompareAtPrice
			if len(rep.Images) > 0 {
				summary.Image = rep.Images[0]
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// Detail hydrates a single product slug into the product-page shape
func (h *ProductHydrator) Detail(ctx context.Context, slug string) (*entities.ProductDetail, error) {
	product, err := h.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	variants, err := h.productRepo.ListVariantsByProductIDs(ctx, []string{product.ID})
	if err != nil {
		return nil, err
	}

	brandNames, categoryNames, err := h.resolveNames(ctx, []*entities.Product{product})
	if err != nil {
		return nil, err
	}

	detail := &entities.ProductDetail{
		Product:  *product,
		Brand:    brandNames[product.BrandID],
		Category: categoryNames[product.CategoryID],
		Variants: make([]entities.ProductVariant, 0, len(variants)),
	}
	for _, v := range variants {
		detail.Variants = append(detail.Variants, *v)
	}

	return detail, nil
}

// resolveNames batch-loads brand and category names for the given products
func (h *ProductHydrator) resolveNames(ctx context.Context, products []*entities.Product) (map[string]string, map[string]string, error) {
	brandIDs := distinctKeys(products, func(p *entities.Product) string { return p.BrandID })
	categoryIDs := distinctKeys(products, func(p *entities.Product) string { return p.CategoryID })

	brandThunk := h.loaders.BrandLoader.LoadMany(ctx, brandIDs)
	categoryThunk := h.loaders.CategoryLoader.LoadMany(ctx, categoryIDs)

	brands, errs := brandThunk()
	if err := firstError(errs); err != nil {
		return nil, nil, err
	}
	categories, errs := categoryThunk()
	if err := firstError(errs); err != nil {
		return nil, nil, err
	}

	brandNames := make(map[string]string, len(brands))
	for _, b := range brands {
		if b != nil {
			brandNames[b.ID] = b.Name
		}
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		if c != nil {
			categoryNames[c.ID] = c.Name
		}
	}

	return brandNames, categoryNames, nil
}

func groupVariants(variants []*entities.ProductVariant) map[string][]*entities.ProductVariant {
	grouped := make(map[string][]*entities.ProductVariant)
	for _, v := range variants {
		grouped[v.ProductID] = append(grouped[v.ProductID], v)
	}
	return grouped
}

// cheapestVariant picks the representative variant for a product card: the
// one with the lowest price, first encountered winning ties
func cheapestVariant(variants []*entities.ProductVariant) *entities.ProductVariant {
	var rep *entities.ProductVariant
	for _, v := range variants {
		if rep == nil || v.Price < rep.Price {
			rep = v
		}
	}
	return rep
}

func distinctKeys(products []*entities.Product, key func(*entities.Product) string) []string {
	seen := make(map[string]struct{}, len(products))
	keys := make([]string, 0, len(products))
	for _, p := range products {
		k := key(p)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
