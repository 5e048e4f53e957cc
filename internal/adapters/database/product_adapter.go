package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/lumiderm/storefront-backend/pkg/errors"
)

// ProductAdapter implements ProductRepository
type ProductAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProductAdapter creates a new product adapter
func NewProductAdapter(client *postgres.Client) repositories.ProductRepository {
	return &ProductAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var productColumns = []interface{}{
	"id", "category_id", "brand_id", "name", "slug", "description", "tags",
	"created_at", "updated_at",
}

// ListIDsByCategory retrieves the IDs of a category's products ordered by
// name ascending. Both the unfiltered browse path and the filtered path
// derive their page ordering from this list.
func (a *ProductAdapter) ListIDsByCategory(ctx context.Context, categoryID string) ([]string, error) {
	query, args, err := a.db.Select("id").
		From("products").
		Where(goqu.Ex{"category_id": categoryID}).
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list product ids", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan product id", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating product ids", err)
	}

	return ids, nil
}

// GetByIDs retrieves multiple products by their IDs
func (a *ProductAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error) {
	if len(ids) == 0 {
		return []*entities.Product{}, nil
	}

	query, args, err := a.db.Select(productColumns...).
		From("products").
		Where(goqu.Ex{"id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get products by ids", err)
	}
	defer rows.Close()

	products := []*entities.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating products", err)
	}

	return products, nil
}

// GetBySlug retrieves a product by its slug
func (a *ProductAdapter) GetBySlug(ctx context.Context, slug string) (*entities.Product, error) {
	query, args, err := a.db.Select(productColumns...).
		From("products").
		Where(goqu.Ex{"slug": slug}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	product := &entities.Product{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.CategoryID,
		&product.BrandID,
		&product.Name,
		&product.Slug,
		&product.Description,
		pq.Array(&product.Tags),
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with slug %s not found", slug))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get product", err)
	}

	return product, nil
}

// ListVariantsByProductIDs retrieves every variant of the given products
func (a *ProductAdapter) ListVariantsByProductIDs(ctx context.Context, productIDs []string) ([]*entities.ProductVariant, error) {
	if len(productIDs) == 0 {
		return []*entities.ProductVariant{}, nil
	}

	query, args, err := a.db.Select("id", "product_id", "price", "compare_at_price", "images").
		From("product_variants").
		Where(goqu.Ex{"product_id": productIDs}).
		Order(goqu.I("product_id").Asc(), goqu.I("price").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build variant query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list product variants", err)
	}
	defer rows.Close()

	variants := []*entities.ProductVariant{}
	for rows.Next() {
		variant := &entities.ProductVariant{}
		var compareAt sql.NullFloat64

		err := rows.Scan(
			&variant.ID,
			&variant.ProductID,
			&variant.Price,
			&compareAt,
			pq.Array(&variant.Images),
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan product variant", err)
		}

		if compareAt.Valid {
			variant.CompareAtPrice = &compareAt.Float64
		}

		variants = append(variants, variant)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating product variants", err)
	}

	return variants, nil
}

func scanProduct(rows *sql.Rows) (*entities.Product, error) {
	product := &entities.Product{}
	err := rows.Scan(
		&product.ID,
		&product.CategoryID,
		&product.BrandID,
		&product.Name,
		&product.Slug,
		&product.Description,
		pq.Array(&product.Tags),
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan product", err)
	}
	return product, nil
}
