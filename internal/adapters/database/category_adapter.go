package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/lumiderm/storefront-backend/pkg/errors"
)

// CategoryAdapter implements CategoryRepository
type CategoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCategoryAdapter creates a new category adapter
func NewCategoryAdapter(client *postgres.Client) repositories.CategoryRepository {
	return &CategoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var categoryColumns = []interface{}{
	"id", "slug", "name", "description", "created_at", "updated_at",
}

// GetBySlug retrieves a category by slug
func (a *CategoryAdapter) GetBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	query, args, err := a.db.Select(categoryColumns...).
		From("categories").
		Where(goqu.Ex{"slug": slug}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	category := &entities.Category{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&category.ID,
		&category.Slug,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("category with slug %s not found", slug))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get category", err)
	}

	return category, nil
}

// GetByIDs retrieves multiple categories by their IDs
func (a *CategoryAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Category, error) {
	if len(ids) == 0 {
		return []*entities.Category{}, nil
	}

	query, args, err := a.db.Select(categoryColumns...).
		From("categories").
		Where(goqu.Ex{"id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryCategories(ctx, query, args...)
}

// List retrieves all categories ordered by name
func (a *CategoryAdapter) List(ctx context.Context) ([]*entities.Category, error) {
	query, args, err := a.db.Select(categoryColumns...).
		From("categories").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryCategories(ctx, query, args...)
}

func (a *CategoryAdapter) queryCategories(ctx context.Context, query string, args ...interface{}) ([]*entities.Category, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query categories", err)
	}
	defer rows.Close()

	categories := []*entities.Category{}
	for rows.Next() {
		category := &entities.Category{}
		err := rows.Scan(
			&category.ID,
			&category.Slug,
			&category.Name,
			&category.Description,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan category", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating categories", err)
	}

	return categories, nil
}
