package services_test

import (
	"context"
	"fmt"
	"sort"

	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
	apperrors "github.com/lumiderm/storefront-backend/pkg/errors"
)

// fixture is an in-memory catalog honoring the repository contracts
// (name-ordered product ids, sort-ordered facets, silent drops of unknown
// ids). err, when set, makes every read fail like a store outage.
type fixture struct {
	categories []*entities.Category
	facets     []*entities.Facet
	options    []*entities.FacetOption
	products   []*entities.Product
	variants   []*entities.ProductVariant
	links      []*entities.ProductFacetLink
	brands     []*entities.Brand
	err        error
}

type fakeCategoryRepo struct{ *fixture }
type fakeFacetRepo struct{ *fixture }
type fakeProductRepo struct{ *fixture }
type fakeBrandRepo struct{ *fixture }

var _ repositories.CategoryRepository = fakeCategoryRepo{}
var _ repositories.FacetRepository = fakeFacetRepo{}
var _ repositories.ProductRepository = fakeProductRepo{}
var _ repositories.BrandRepository = fakeBrandRepo{}

func (f fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("category with slug %s not found", slug))
}

func (f fakeCategoryRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := toSet(ids)
	out := []*entities.Category{}
	for _, c := range f.categories {
		if wanted[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f fakeCategoryRepo) List(ctx context.Context) ([]*entities.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f fakeFacetRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entities.Facet, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*entities.Facet{}
	for _, facet := range f.facets {
		if facet.CategoryID == categoryID {
			out = append(out, facet)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f fakeFacetRepo) ListOptionsByFacetIDs(ctx context.Context, facetIDs []string) ([]*entities.FacetOption, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := toSet(facetIDs)
	out := []*entities.FacetOption{}
	for _, o := range f.options {
		if wanted[o.FacetID] {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FacetID != out[j].FacetID {
			return out[i].FacetID < out[j].FacetID
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (f fakeFacetRepo) ListOptionsByIDs(ctx context.Context, ids []string) ([]*entities.FacetOption, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := toSet(ids)
	out := []*entities.FacetOption{}
	for _, o := range f.options {
		if wanted[o.ID] {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f fakeFacetRepo) ListProductLinks(ctx context.Context, filter repositories.LinkFilter) ([]*entities.ProductFacetLink, error) {
	if f.err != nil {
		return nil, f.err
	}
	productFilter := toSet(filter.ProductIDs)
	optionFilter := toSet(filter.FacetOptionIDs)
	out := []*entities.ProductFacetLink{}
	for _, link := range f.links {
		if len(productFilter) > 0 && !productFilter[link.ProductID] {
			continue
		}
		if len(optionFilter) > 0 && !optionFilter[link.FacetOptionID] {
			continue
		}
		out = append(out, link)
	}
	return out, nil
}

func (f fakeProductRepo) ListIDsByCategory(ctx context.Context, categoryID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	matching := []*entities.Product{}
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			matching = append(matching, p)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool { return matching[i].Name < matching[j].Name })
	ids := []string{}
	for _, p := range matching {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (f fakeProductRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := toSet(ids)
	out := []*entities.Product{}
	for _, p := range f.products {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*entities.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with slug %s not found", slug))
}

func (f fakeProductRepo) ListVariantsByProductIDs(ctx context.Context, productIDs []string) ([]*entities.ProductVariant, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := toSet(productIDs)
	out := []*entities.ProductVariant{}
	for _, v := range f.variants {
		if wanted[v.ProductID] {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f fakeBrandRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.Brand, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := toSet(ids)
	out := []*entities.Brand{}
	for _, b := range f.brands {
		if wanted[b.ID] {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f fakeBrandRepo) List(ctx context.Context) ([]*entities.Brand, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.brands, nil
}

// storefrontFixture builds the catalog shared by the service tests.
//
// Skincare carries two facets:
//
//	Skin Type: Dry (opt-dry), Oily (opt-oily), Combination (opt-combo)
//	Concern:   Acne (opt-acne), Aging (opt-aging)
//
// and four products, listed here in name order:
//
//	Aqua Cream (p1) -> dry, acne
//	Balm       (p2) -> oily, acne
//	Cleanser   (p3) -> dry, aging
//	Dew Mist   (p4) -> combo
//
// Makeup carries fifteen products (m01..m15, names sort in that order) with
// no facets, for pagination coverage. Bodycare has a facet but no products.
func storefrontFixture() *fixture {
	fx := &fixture{
		categories: []*entities.Category{
			{ID: "cat-skin", Slug: "skincare", Name: "Skincare"},
			{ID: "cat-makeup", Slug: "makeup", Name: "Makeup"},
			{ID: "cat-body", Slug: "bodycare", Name: "Bodycare"},
			{ID: "cat-hair", Slug: "haircare", Name: "Haircare"},
		},
		brands: []*entities.Brand{
			{ID: "brand-lum", Name: "Lumiderm", Slug: "lumiderm"},
			{ID: "brand-vel", Name: "Velura", Slug: "velura"},
		},
		facets: []*entities.Facet{
			{ID: "f-skin-type", CategoryID: "cat-skin", Name: "Skin Type", Slug: "skin-type", SortOrder: 1},
			{ID: "f-concern", CategoryID: "cat-skin", Name: "Concern", Slug: "concern", SortOrder: 2},
			{ID: "f-scent", CategoryID: "cat-body", Name: "Scent", Slug: "scent", SortOrder: 1},
		},
		options: []*entities.FacetOption{
			{ID: "opt-dry", FacetID: "f-skin-type", Label: "Dry", Value: "dry", SortOrder: 1},
			{ID: "opt-oily", FacetID: "f-skin-type", Label: "Oily", Value: "oily", SortOrder: 2},
			{ID: "opt-combo", FacetID: "f-skin-type", Label: "Combination", Value: "combination", SortOrder: 3},
			{ID: "opt-acne", FacetID: "f-concern", Label: "Acne", Value: "acne", SortOrder: 1},
			{ID: "opt-aging", FacetID: "f-concern", Label: "Aging", Value: "aging", SortOrder: 2},
			{ID: "opt-citrus", FacetID: "f-scent", Label: "Citrus", Value: "citrus", SortOrder: 1},
		},
		products: []*entities.Product{
			{ID: "p1", CategoryID: "cat-skin", BrandID: "brand-lum", Name: "Aqua Cream", Slug: "aqua-cream", Description: "Lightweight gel cream"},
			{ID: "p2", CategoryID: "cat-skin", BrandID: "brand-vel", Name: "Balm", Slug: "balm", Description: "Overnight balm"},
			{ID: "p3", CategoryID: "cat-skin", BrandID: "brand-lum", Name: "Cleanser", Slug: "cleanser", Description: "Foaming cleanser"},
			{ID: "p4", CategoryID: "cat-skin", BrandID: "brand-vel", Name: "Dew Mist", Slug: "dew-mist", Description: "Hydrating mist"},
		},
		variants: []*entities.ProductVariant{
			{ID: "v1a", ProductID: "p1", Price: 30, Images: []string{"aqua-30.jpg"}},
			{ID: "v1b", ProductID: "p1", Price: 20, CompareAtPrice: ptr(25.0), Images: []string{"aqua-20.jpg", "aqua-alt.jpg"}},
			{ID: "v2a", ProductID: "p2", Price: 18, Images: []string{"balm.jpg"}},
			{ID: "v3a", ProductID: "p3", Price: 12, Images: []string{"cleanser.jpg"}},
		},
		links: []*entities.ProductFacetLink{
			{ProductID: "p1", FacetOptionID: "opt-dry"},
			{ProductID: "p1", FacetOptionID: "opt-acne"},
			{ProductID: "p2", FacetOptionID: "opt-oily"},
			{ProductID: "p2", FacetOptionID: "opt-acne"},
			{ProductID: "p3", FacetOptionID: "opt-dry"},
			{ProductID: "p3", FacetOptionID: "opt-aging"},
			{ProductID: "p4", FacetOptionID: "opt-combo"},
		},
	}

	for i := 1; i <= 15; i++ {
		id := fmt.Sprintf("m%02d", i)
		fx.products = append(fx.products, &entities.Product{
			ID:         id,
			CategoryID: "cat-makeup",
			BrandID:    "brand-vel",
			Name:       fmt.Sprintf("Makeup %02d", i),
			Slug:       fmt.Sprintf("makeup-%02d", i),
		})
		fx.variants = append(fx.variants, &entities.ProductVariant{
			ID:        id + "-v",
			ProductID: id,
			Price:     float64(10 + i),
			Images:    []string{id + ".jpg"},
		})
	}

	return fx
}

func ptr(f float64) *float64 { return &f }

func toSet(ids []string) map[string]bool {
	s := make(map[string]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}
