package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/lumiderm/storefront-backend/pkg/errors"
)

// BrandAdapter implements BrandRepository
type BrandAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBrandAdapter creates a new brand adapter
func NewBrandAdapter(client *postgres.Client) repositories.BrandRepository {
	return &BrandAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByIDs retrieves multiple brands by their IDs
func (a *BrandAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Brand, error) {
	if len(ids) == 0 {
		return []*entities.Brand{}, nil
	}

	query, args, err := a.db.Select("id", "name", "slug").
		From("brands").
		Where(goqu.Ex{"id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryBrands(ctx, query, args...)
}

// List retrieves all brands ordered by name
func (a *BrandAdapter) List(ctx context.Context) ([]*entities.Brand, error) {
	query, args, err := a.db.Select("id", "name", "slug").
		From("brands").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryBrands(ctx, query, args...)
}

func (a *BrandAdapter) queryBrands(ctx context.Context, query string, args ...interface{}) ([]*entities.Brand, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query brands", err)
	}
	defer rows.Close()

	brands := []*entities.Brand{}
	for rows.Next() {
		brand := &entities.Brand{}
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Slug); err != nil {
			return nil, apperrors.NewInternalError("failed to scan brand", err)
		}
		brands = append(brands, brand)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating brands", err)
	}

	return brands, nil
}
