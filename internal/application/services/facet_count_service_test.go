package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumiderm/storefront-backend/internal/application/services"
	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	apperrors "github.com/lumiderm/storefront-backend/pkg/errors"
)

func newFacetCountService(fx *fixture) *services.FacetCountService {
	return services.NewFacetCountService(
		fakeCategoryRepo{fx},
		fakeFacetRepo{fx},
		fakeProductRepo{fx},
	)
}

// countsFor flattens one facet's options into a value->count map for
// assertion convenience.
func countsFor(t *testing.T, facets []entities.FacetWithCounts, slug string) map[string]int {
	t.Helper()
	for _, f := range facets {
		if f.Slug == slug {
			out := make(map[string]int, len(f.Options))
			for _, o := range f.Options {
				out[o.Value] = o.Count
			}
			return out
		}
	}
	t.Fatalf("facet %q not in result", slug)
	return nil
}

func TestGetFacetCounts_NoSelection(t *testing.T) {
	svc := newFacetCountService(storefrontFixture())

	facets, err := svc.GetFacetCounts(context.Background(), "skincare", nil)

	require.NoError(t, err)
	require.Len(t, facets, 2)
	assert.Equal(t, "Skin Type", facets[0].Name)
	assert.Equal(t, "Concern", facets[1].Name)
	assert.Equal(t, map[string]int{"dry": 2, "oily": 1, "combination": 1}, countsFor(t, facets, "skin-type"))
	assert.Equal(t, map[string]int{"acne": 2, "aging": 1}, countsFor(t, facets, "concern"))
}

func TestGetFacetCounts_SelectionDoesNotNarrowOwnFacet(t *testing.T) {
	svc := newFacetCountService(storefrontFixture())

	facets, err := svc.GetFacetCounts(context.Background(), "skincare", []string{"opt-dry"})

	require.NoError(t, err)
	// Skin Type ignores its own selection: Oily and Combination stay visible.
	assert.Equal(t, map[string]int{"dry": 2, "oily": 1, "combination": 1}, countsFor(t, facets, "skin-type"))
	// Concern is narrowed to dry products {Aqua Cream, Cleanser}.
	assert.Equal(t, map[string]int{"acne": 1, "aging": 1}, countsFor(t, facets, "concern"))
}

func TestGetFacetCounts_CrossFacetSelection(t *testing.T) {
	svc := newFacetCountService(storefrontFixture())

	facets, err := svc.GetFacetCounts(context.Background(), "skincare", []string{"opt-dry", "opt-acne"})

	require.NoError(t, err)
	// Skin Type counted against acne products {Aqua Cream, Balm}.
	assert.Equal(t, map[string]int{"dry": 1, "oily": 1, "combination": 0}, countsFor(t, facets, "skin-type"))
	// Concern counted against dry products {Aqua Cream, Cleanser}.
	assert.Equal(t, map[string]int{"acne": 1, "aging": 1}, countsFor(t, facets, "concern"))
}

func TestGetFacetCounts_MultipleOptionsSameFacetUnion(t *testing.T) {
	svc := newFacetCountService(storefrontFixture())

	facets, err := svc.GetFacetCounts(context.Background(), "skincare", []string{"opt-dry", "opt-oily"})

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"dry": 2, "oily": 1, "combination": 1}, countsFor(t, facets, "skin-type"))
	// Concern counted against dry-or-oily products {p1, p2, p3}.
	assert.Equal(t, map[string]int{"acne": 2, "aging": 1}, countsFor(t, facets, "concern"))
}

func TestGetFacetCounts_EmptyIntersectionZeroesCounts(t *testing.T) {
	svc := newFacetCountService(storefrontFixture())

	// Combination products carry no Concern option, so Concern's base set is
	// empty once Combination is selected.
	facets, err := svc.GetFacetCounts(context.Background(), "skincare", []string{"opt-combo", "opt-acne"})

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"dry": 1, "oily": 1, "combination": 0}, countsFor(t, facets, "skin-type"))
	assert.Equal(t, map[string]int{"acne": 0, "aging": 0}, countsFor(t, facets, "concern"))
}

func TestGetFacetCounts_UnknownOptionIDsIgnored(t *testing.T) {
	svc := newFacetCountService(storefrontFixture())

	withStale, err := svc.GetFacetCounts(context.Background(), "skincare", []string{"opt-dry", "opt-deleted", "opt-citrus"})
	require.NoError(t, err)
	clean, err := svc.GetFacetCounts(context.Background(), "skincare", []string{"opt-dry"})
	require.NoError(t, err)

	// opt-deleted doesn't exist and opt-citrus belongs to another category;
	// both are dropped without affecting the result.
	assert.Equal(t, clean, withStale)
}

func TestGetFacetCounts_CategoryWithoutProducts(t *testing.T) {
	svc := newFacetCountService(storefrontFixture())

	facets, err := svc.GetFacetCounts(context.Background(), "bodycare", nil)

	require.NoError(t, err)
	require.Len(t, facets, 1)
	assert.Equal(t, map[string]int{"citrus": 0}, countsFor(t, facets, "scent"))
}

func TestGetFacetCounts_CategoryWithoutFacets(t *testing.T) {
	svc := newFacetCountService(storefrontFixture())

	facets, err := svc.GetFacetCounts(context.Background(), "haircare", nil)

	require.NoError(t, err)
	assert.Empty(t, facets)
}

func TestGetFacetCounts_CategoryNotFound(t *testing.T) {
	svc := newFacetCountService(storefrontFixture())

	facets, err := svc.GetFacetCounts(context.Background(), "fragrance", nil)

	assert.Nil(t, facets)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetFacetCounts_StorePropagatesError(t *testing.T) {
	fx := storefrontFixture()
	fx.err = errors.New("connection refused")
	svc := newFacetCountService(fx)

	_, err := svc.GetFacetCounts(context.Background(), "skincare", nil)

	assert.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))
}
