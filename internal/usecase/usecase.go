package usecase

import "context"

type MenuItemUC interface {
	Create(ctx context.Context, req *CreateMenuItemReq) (*MenuItemInfo, error)
	GetByID(ctx context.Context, id int64) (*MenuItemInfo, error)
	List(ctx context.Context) ([]MenuItemInfo, error)
	ListPage(ctx context.Context, page *PageRequest) (*MenuItemPage, error)
	Update(ctx context.Context, id int64, req *UpdateMenuItemReq) (*MenuItemInfo, error)
	Delete(ctx context.Context, id int64) error

	Search(ctx context.Context, term string) ([]MenuItemInfo, error)
	SearchPage(ctx context.Context, term string, page *PageRequest) (*MenuItemPage, error)
	ByCategory(ctx context.Context, category string) ([]MenuItemInfo, error)
	ByCategoryPage(ctx context.Context, category string, page *PageRequest) (*MenuItemPage, error)
	ByDietaryTag(ctx context.Context, tag string) ([]MenuItemInfo, error)
	ByDietaryTagPage(ctx context.Context, tag string, page *PageRequest) (*MenuItemPage, error)
	ByPriceRange(ctx context.Context, minCents, maxCents int64) ([]MenuItemInfo, error)
	ByPriceRangePage(ctx context.Context, minCents, maxCents int64, page *PageRequest) (*MenuItemPage, error)

	Categories(ctx context.Context) ([]string, error)
	DietaryTags(ctx context.Context) ([]string, error)
}
