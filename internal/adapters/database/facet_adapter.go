package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/lumiderm/storefront-backend/pkg/errors"
)

// FacetAdapter implements FacetRepository
type FacetAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFacetAdapter creates a new facet adapter
func NewFacetAdapter(client *postgres.Client) repositories.FacetRepository {
	return &FacetAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByCategory retrieves a category's facets ordered by sort_order.
// Ties keep insertion order via the id tiebreaker (ids are time-ordered).
func (a *FacetAdapter) ListByCategory(ctx context.Context, categoryID string) ([]*entities.Facet, error) {
	query, args, err := a.db.Select("id", "category_id", "name", "slug", "sort_order").
		From("category_facets").
		Where(goqu.Ex{"category_id": categoryID}).
		Order(goqu.I("sort_order").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build facet query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list facets", err)
	}
	defer rows.Close()

	facets := []*entities.Facet{}
	for rows.Next() {
		facet := &entities.Facet{}
		err := rows.Scan(&facet.ID, &facet.CategoryID, &facet.Name, &facet.Slug, &facet.SortOrder)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan facet", err)
		}
		facets = append(facets, facet)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating facets", err)
	}

	return facets, nil
}

// ListOptionsByFacetIDs retrieves options for the given facets, ordered by
// sort_order within each facet
func (a *FacetAdapter) ListOptionsByFacetIDs(ctx context.Context, facetIDs []string) ([]*entities.FacetOption, error) {
	if len(facetIDs) == 0 {
		return []*entities.FacetOption{}, nil
	}

	query, args, err := a.db.Select("id", "facet_id", "label", "value", "sort_order").
		From("facet_options").
		Where(goqu.Ex{"facet_id": facetIDs}).
		Order(goqu.I("facet_id").Asc(), goqu.I("sort_order").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build option query", err)
	}

	return a.queryOptions(ctx, query, args...)
}

// ListOptionsByIDs retrieves options by their IDs; unknown IDs are omitted
func (a *FacetAdapter) ListOptionsByIDs(ctx context.Context, ids []string) ([]*entities.FacetOption, error) {
	if len(ids) == 0 {
		return []*entities.FacetOption{}, nil
	}

	query, args, err := a.db.Select("id", "facet_id", "label", "value", "sort_order").
		From("facet_options").
		Where(goqu.Ex{"id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build option query", err)
	}

	return a.queryOptions(ctx, query, args...)
}

func (a *FacetAdapter) queryOptions(ctx context.Context, query string, args ...interface{}) ([]*entities.FacetOption, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query facet options", err)
	}
	defer rows.Close()

	options := []*entities.FacetOption{}
	for rows.Next() {
		option := &entities.FacetOption{}
		err := rows.Scan(&option.ID, &option.FacetID, &option.Label, &option.Value, &option.SortOrder)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan facet option", err)
		}
		options = append(options, option)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating facet options", err)
	}

	return options, nil
}

// ListProductLinks retrieves product/facet-option join rows matching the filter
func (a *FacetAdapter) ListProductLinks(ctx context.Context, filter repositories.LinkFilter) ([]*entities.ProductFacetLink, error) {
	ds := a.db.Select("product_id", "facet_option_id").From("product_facet_options")

	if len(filter.ProductIDs) > 0 {
		ds = ds.Where(goqu.Ex{"product_id": filter.ProductIDs})
	}
	if len(filter.FacetOptionIDs) > 0 {
		ds = ds.Where(goqu.Ex{"facet_option_id": filter.FacetOptionIDs})
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build link query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list product facet links", err)
	}
	defer rows.Close()

	links := []*entities.ProductFacetLink{}
	for rows.Next() {
		link := &entities.ProductFacetLink{}
		if err := rows.Scan(&link.ProductID, &link.FacetOptionID); err != nil {
			return nil, apperrors.NewInternalError("failed to scan product facet link", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating product facet links", err)
	}

	return links, nil
}
