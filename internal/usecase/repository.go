package usecase

import (
	"context"

	"github.com/quickbite/go-backend/internal/domain"
)

// MenuItemRepository — примитивы чтения и записи позиций меню.
// Все выборки неявно ограничены is_active = true.
type MenuItemRepository interface {
	FindActiveByID(ctx context.Context, id int64) (*domain.MenuItem, error)

	ListActive(ctx context.Context) ([]domain.MenuItem, error)
	ListActivePage(ctx context.Context, page *PageRequest) ([]domain.MenuItem, int64, error)

	FindByCategory(ctx context.Context, category string) ([]domain.MenuItem, error)
	FindByCategoryPage(ctx context.Context, category string, page *PageRequest) ([]domain.MenuItem, int64, error)

	FindByDietaryTag(ctx context.Context, tag string) ([]domain.MenuItem, error)
	FindByDietaryTagPage(ctx context.Context, tag string, page *PageRequest) ([]domain.MenuItem, int64, error)

	FindByPriceBetween(ctx context.Context, minCents, maxCents int64) ([]domain.MenuItem, error)
	FindByPriceBetweenPage(ctx context.Context, minCents, maxCents int64, page *PageRequest) ([]domain.MenuItem, int64, error)

	SearchByNameOrDescription(ctx context.Context, term string) ([]domain.MenuItem, error)
	SearchByNameOrDescriptionPage(ctx context.Context, term string, page *PageRequest) ([]domain.MenuItem, int64, error)

	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctDietaryTags(ctx context.Context) ([]string, error)

	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByNameExcludingID(ctx context.Context, name string, id int64) (bool, error)

	Insert(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	Save(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
}
