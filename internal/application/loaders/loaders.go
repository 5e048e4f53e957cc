package loaders

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
)

// Loaders batches the per-entity lookups issued while assembling product
// summaries, so a page of products costs one brands query and one categories
// query regardless of page size. Caching is disabled: loaders are shared
// across requests and catalog rows may change between them.
type Loaders struct {
	BrandLoader    *dataloader.Loader[string, *entities.Brand]
	CategoryLoader *dataloader.Loader[string, *entities.Category]
}

// NewLoaders creates a new instance of Loaders
func NewLoaders(brandRepo repositories.BrandRepository, categoryRepo repositories.CategoryRepository) *Loaders {
	return &Loaders{
		BrandLoader: dataloader.NewBatchedLoader(
			func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Brand] {
				results := make([]*dataloader.Result[*entities.Brand], len(keys))
				brands, err := brandRepo.GetByIDs(ctx, keys)

				brandMap := make(map[string]*entities.Brand)
				if err == nil {
					for _, b := range brands {
						brandMap[b.ID] = b
					}
				}

				for i, key := range keys {
					if err != nil {
						results[i] = &dataloader.Result[*entities.Brand]{Error: err}
					} else {
						// Missing brands resolve to nil rather than an
						// error: a dangling brand_id must not break the
						// whole product grid.
						results[i] = &dataloader.Result[*entities.Brand]{Data: brandMap[key]}
					}
				}
				return results
			},
			dataloader.WithCache[string, *entities.Brand](&dataloader.NoCache[string, *entities.Brand]{}),
		),
		CategoryLoader: dataloader.NewBatchedLoader(
			func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Category] {
				results := make([]*dataloader.Result[*entities.Category], len(keys))
				categories, err := categoryRepo.GetByIDs(ctx, keys)

				categoryMap := make(map[string]*entities.Category)
				if err == nil {
					for _, c := range categories {
						categoryMap[c.ID] = c
					}
				}

				for i, key := range keys {
					if err != nil {
						results[i] = &dataloader.Result[*entities.Category]{Error: err}
					} else {
						results[i] = &dataloader.Result[*entities.Category]{Data: categoryMap[key]}
					}
				}
				return results
			},
			dataloader.WithCache[string, *entities.Category](&dataloader.NoCache[string, *entities.Category]{}),
		),
	}
}
