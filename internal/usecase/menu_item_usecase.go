package usecase

import (
	"context"
	"errors"
	"strings"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/quickbite/go-backend/pkg/e"
	"github.com/quickbite/go-backend/pkg/logger"
	"github.com/quickbite/go-backend/pkg/tr"
)

// MenuItemUseCase реализует бизнес-логику управления позициями меню.
// Единственный бизнес-инвариант: имя уникально среди активных позиций
// (без учета регистра). Мутирующие операции выполняются в одной
// транзакции: проверка уникальности и запись атомарны для вызывающего,
// проигравший конкурентный писатель получает ErrDuplicateMenuItemName
// от частичного уникального индекса.
type MenuItemUseCase struct {
	repo   MenuItemRepository
	dbPool transaction.Transactional
	logger logger.Logger
}

func NewMenuItemUC(
	repo MenuItemRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *MenuItemUseCase {
	return &MenuItemUseCase{
		repo:   repo,
		dbPool: dbPool,
		logger: logger,
	}
}

// Create создает новую активную позицию меню.
// При конфликте имени среди активных позиций возвращает DuplicateNameError.
func (m *MenuItemUseCase) Create(ctx context.Context, req *CreateMenuItemReq) (*MenuItemInfo, error) {
	const op = "MenuItemUseCase.Create"
	m.logger.Infof("creating new menu item with name: %s", req.Name)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	exists, err := m.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if exists {
		m.logger.Warnf("attempt to create menu item with duplicate name: %s", req.Name)
		err = e.DuplicateName(req.Name)
		return nil, err
	}

	item, err := m.repo.Insert(ctx, NewMenuItemFromCreate(req))
	if err != nil {
		// Проигравший конкурентный писатель: нарушение частичного
		// уникального индекса по lower(name).
		if errors.Is(err, e.ErrDuplicateMenuItemName) {
			m.logger.Warnf("attempt to create menu item with duplicate name: %s", req.Name)
			err = e.DuplicateName(req.Name)
			return nil, err
		}
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	m.logger.Infof("successfully created menu item with ID: %d", item.ID)
	info := NewMenuItemInfo(item)
	return &info, nil
}

// GetByID возвращает активную позицию меню по идентификатору.
func (m *MenuItemUseCase) GetByID(ctx context.Context, id int64) (*MenuItemInfo, error) {
	const op = "MenuItemUseCase.GetByID"
	m.logger.Debugf("fetching menu item with ID: %d", id)

	item, err := m.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, m.notFoundOrWrap(op, id, err)
	}

	info := NewMenuItemInfo(item)
	return &info, nil
}

// List возвращает все активные позиции меню.
func (m *MenuItemUseCase) List(ctx context.Context) ([]MenuItemInfo, error) {
	const op = "MenuItemUseCase.List"
	m.logger.Debugf("fetching all active menu items")

	items, err := m.repo.ListActive(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewMenuItemInfos(items), nil
}

// ListPage возвращает страницу активных позиций меню.
func (m *MenuItemUseCase) ListPage(ctx context.Context, page *PageRequest) (*MenuItemPage, error) {
	const op = "MenuItemUseCase.ListPage"

	if err := page.Validate(); err != nil {
		return nil, err
	}

	items, total, err := m.repo.ListActivePage(ctx, page)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewMenuItemPage(NewMenuItemInfos(items), page, total), nil
}

// Update частично обновляет активную позицию меню: перезаписываются
// только переданные поля. Имя повторно проверяется на уникальность,
// если меняется; переотправка того же имени в другом регистре
// дубликатом не считается.
func (m *MenuItemUseCase) Update(ctx context.Context, id int64, req *UpdateMenuItemReq) (*MenuItemInfo, error) {
	const op = "MenuItemUseCase.Update"
	m.logger.Infof("updating menu item with ID: %d", id)

	if !req.HasUpdates() {
		m.logger.Warnf("no updates provided for menu item with ID: %d", id)
		return nil, e.ErrNoUpdateFields
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	item, err := m.repo.FindActiveByID(ctx, id)
	if err != nil {
		err = m.notFoundOrWrap(op, id, err)
		return nil, err
	}

	if req.Name != nil && !strings.EqualFold(*req.Name, item.Name) {
		exists, existsErr := m.repo.ExistsByNameExcludingID(ctx, *req.Name, id)
		if existsErr != nil {
			err = e.Wrap(op, existsErr)
			return nil, err
		}
		if exists {
			m.logger.Warnf("attempt to update menu item to duplicate name: %s", *req.Name)
			err = e.DuplicateName(*req.Name)
			return nil, err
		}
	}

	ApplyUpdateReq(item, req)

	updated, err := m.repo.Save(ctx, item)
	if err != nil {
		if errors.Is(err, e.ErrDuplicateMenuItemName) {
			err = e.DuplicateName(item.Name)
			return nil, err
		}
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	m.logger.Infof("successfully updated menu item with ID: %d", id)
	info := NewMenuItemInfo(updated)
	return &info, nil
}

// Delete выполняет мягкое удаление: запись помечается неактивной,
// физически строка не удаляется. Обратного перехода к active нет.
func (m *MenuItemUseCase) Delete(ctx context.Context, id int64) error {
	const op = "MenuItemUseCase.Delete"
	m.logger.Infof("deleting menu item with ID: %d", id)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	item, err := m.repo.FindActiveByID(ctx, id)
	if err != nil {
		err = m.notFoundOrWrap(op, id, err)
		return err
	}

	item.IsActive = false
	if _, err = m.repo.Save(ctx, item); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	m.logger.Infof("successfully deleted menu item with ID: %d", id)
	return nil
}

// Search ищет позиции по подстроке имени или описания.
// Пустой или пробельный запрос эквивалентен обычному списку.
func (m *MenuItemUseCase) Search(ctx context.Context, term string) ([]MenuItemInfo, error) {
	const op = "MenuItemUseCase.Search"

	term = strings.TrimSpace(term)
	if term == "" {
		return m.List(ctx)
	}

	m.logger.Debugf("searching menu items with term: %s", term)

	items, err := m.repo.SearchByNameOrDescription(ctx, term)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewMenuItemInfos(items), nil
}

// SearchPage — постраничный вариант Search.
func (m *MenuItemUseCase) SearchPage(ctx context.Context, term string, page *PageRequest) (*MenuItemPage, error) {
	const op = "MenuItemUseCase.SearchPage"

	term = strings.TrimSpace(term)
	if term == "" {
		return m.ListPage(ctx, page)
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}

	items, total, err := m.repo.SearchByNameOrDescriptionPage(ctx, term, page)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewMenuItemPage(NewMenuItemInfos(items), page, total), nil
}

// ByCategory возвращает позиции категории (точное совпадение без учета регистра).
func (m *MenuItemUseCase) ByCategory(ctx context.Context, category string) ([]MenuItemInfo, error) {
	const op = "MenuItemUseCase.ByCategory"
	m.logger.Debugf("fetching menu items by category: %s", category)

	items, err := m.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewMenuItemInfos(items), nil
}

func (m *MenuItemUseCase) ByCategoryPage(ctx context.Context, category string, page *PageRequest) (*MenuItemPage, error) {
	const op = "MenuItemUseCase.ByCategoryPage"

	if err := page.Validate(); err != nil {
		return nil, err
	}

	items, total, err := m.repo.FindByCategoryPage(ctx, category, page)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewMenuItemPage(NewMenuItemInfos(items), page, total), nil
}

// ByDietaryTag возвращает позиции, в теге которых встречается подстрока.
func (m *MenuItemUseCase) ByDietaryTag(ctx context.Context, tag string) ([]MenuItemInfo, error) {
	const op = "MenuItemUseCase.ByDietaryTag"
	m.logger.Debugf("fetching menu items by dietary tag: %s", tag)

	items, err := m.repo.FindByDietaryTag(ctx, tag)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewMenuItemInfos(items), nil
}

func (m *MenuItemUseCase) ByDietaryTagPage(ctx context.Context, tag string, page *PageRequest) (*MenuItemPage, error) {
	const op = "MenuItemUseCase.ByDietaryTagPage"

	if err := page.Validate(); err != nil {
		return nil, err
	}

	items, total, err := m.repo.FindByDietaryTagPage(ctx, tag, page)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewMenuItemPage(NewMenuItemInfos(items), page, total), nil
}

// ByPriceRange возвращает позиции с ценой в границах [minCents, maxCents]
// включительно. minCents > maxCents — ошибка аргумента; проверка живет
// здесь, а не только на границе.
func (m *MenuItemUseCase) ByPriceRange(ctx context.Context, minCents, maxCents int64) ([]MenuItemInfo, error) {
	const op = "MenuItemUseCase.ByPriceRange"

	if minCents > maxCents {
		return nil, e.ErrInvalidPriceRange
	}

	m.logger.Debugf("fetching menu items by price range: %d - %d", minCents, maxCents)

	items, err := m.repo.FindByPriceBetween(ctx, minCents, maxCents)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewMenuItemInfos(items), nil
}

func (m *MenuItemUseCase) ByPriceRangePage(ctx context.Context, minCents, maxCents int64, page *PageRequest) (*MenuItemPage, error) {
	const op = "MenuItemUseCase.ByPriceRangePage"

	if minCents > maxCents {
		return nil, e.ErrInvalidPriceRange
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}

	items, total, err := m.repo.FindByPriceBetweenPage(ctx, minCents, maxCents, page)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewMenuItemPage(NewMenuItemInfos(items), page, total), nil
}

// Categories возвращает отсортированный список различных категорий активных позиций.
func (m *MenuItemUseCase) Categories(ctx context.Context) ([]string, error) {
	const op = "MenuItemUseCase.Categories"
	m.logger.Debugf("fetching all distinct categories")

	categories, err := m.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// DietaryTags возвращает отсортированный список различных тегов активных позиций.
func (m *MenuItemUseCase) DietaryTags(ctx context.Context) ([]string, error) {
	const op = "MenuItemUseCase.DietaryTags"
	m.logger.Debugf("fetching all distinct dietary tags")

	tags, err := m.repo.DistinctDietaryTags(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return tags, nil
}

// notFoundOrWrap переводит отсутствие строки в типизированную ошибку с ID.
func (m *MenuItemUseCase) notFoundOrWrap(op string, id int64, err error) error {
	if errors.Is(err, e.ErrMenuItemNotFound) {
		m.logger.Warnf("menu item not found with ID: %d", id)
		return e.NotFoundID(id)
	}
	return e.Wrap(op, err)
}
