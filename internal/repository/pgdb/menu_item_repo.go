package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/quickbite/go-backend/internal/domain"
	"github.com/quickbite/go-backend/internal/repository/pgdb/converter"
	"github.com/quickbite/go-backend/internal/usecase"
	"github.com/quickbite/go-backend/pkg/e"
	"github.com/quickbite/go-backend/pkg/tr"
)

const menuItemColumns = "id, name, description, price_cents, category, dietary_tag, created_at, updated_at, is_active"

// sortColumns переводит поля сортировки API в имена колонок.
// ORDER BY нельзя параметризовать, поэтому в текст запроса попадают
// только значения из этой таблицы.
var sortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"description": "description",
	"price":       "price_cents",
	"category":    "category",
	"dietaryTag":  "dietary_tag",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// MenuItemRepo реализует репозиторий позиций меню поверх PostgreSQL.
type MenuItemRepo struct {
	pool *pgxpool.Pool
	conv converter.MenuItemConverter
}

func NewMenuItemRepo(pool *pgxpool.Pool, conv converter.MenuItemConverter) *MenuItemRepo {
	return &MenuItemRepo{
		pool: pool,
		conv: conv,
	}
}

// querier — общий срез методов pgx.Tx и pgxpool.Pool.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// q возвращает транзакцию из контекста, если она открыта, иначе пул.
// Проверки существования внутри create/update должны видеть состояние
// своей транзакции.
func (r *MenuItemRepo) q(ctx context.Context) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}
	return r.pool
}

// FindActiveByID возвращает активную позицию меню по идентификатору.
// Отсутствующая или мягко удаленная запись — e.ErrMenuItemNotFound.
func (r *MenuItemRepo) FindActiveByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE id = $1 AND is_active
	`

	model, err := r.scanOne(r.q(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrMenuItemNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(model), nil
}

// ListActive возвращает все активные позиции меню.
func (r *MenuItemRepo) ListActive(ctx context.Context) ([]domain.MenuItem, error) {
	return r.list(ctx, "is_active", "", nil)
}

// ListActivePage возвращает страницу активных позиций и их общее число.
func (r *MenuItemRepo) ListActivePage(ctx context.Context, page *usecase.PageRequest) ([]domain.MenuItem, int64, error) {
	return r.listPage(ctx, "is_active", nil, page)
}

// FindByCategory возвращает активные позиции категории, без учета регистра.
func (r *MenuItemRepo) FindByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	return r.list(ctx, "LOWER(category) = LOWER($1) AND is_active", "", []any{category})
}

func (r *MenuItemRepo) FindByCategoryPage(ctx context.Context, category string, page *usecase.PageRequest) ([]domain.MenuItem, int64, error) {
	return r.listPage(ctx, "LOWER(category) = LOWER($1) AND is_active", []any{category}, page)
}

// FindByDietaryTag возвращает активные позиции, тег которых содержит подстроку.
func (r *MenuItemRepo) FindByDietaryTag(ctx context.Context, tag string) ([]domain.MenuItem, error) {
	return r.list(ctx, "dietary_tag ILIKE '%' || $1 || '%' AND is_active", "", []any{tag})
}

func (r *MenuItemRepo) FindByDietaryTagPage(ctx context.Context, tag string, page *usecase.PageRequest) ([]domain.MenuItem, int64, error) {
	return r.listPage(ctx, "dietary_tag ILIKE '%' || $1 || '%' AND is_active", []any{tag}, page)
}

// FindByPriceBetween возвращает активные позиции с ценой в границах
// [minCents, maxCents] включительно, по возрастанию цены.
func (r *MenuItemRepo) FindByPriceBetween(ctx context.Context, minCents, maxCents int64) ([]domain.MenuItem, error) {
	return r.list(ctx, "price_cents BETWEEN $1 AND $2 AND is_active", "ORDER BY price_cents ASC", []any{minCents, maxCents})
}

func (r *MenuItemRepo) FindByPriceBetweenPage(ctx context.Context, minCents, maxCents int64, page *usecase.PageRequest) ([]domain.MenuItem, int64, error) {
	return r.listPage(ctx, "price_cents BETWEEN $1 AND $2 AND is_active", []any{minCents, maxCents}, page)
}

// SearchByNameOrDescription ищет подстроку в имени или описании (OR, без учета регистра).
func (r *MenuItemRepo) SearchByNameOrDescription(ctx context.Context, term string) ([]domain.MenuItem, error) {
	return r.list(ctx, "(name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%') AND is_active", "", []any{term})
}

func (r *MenuItemRepo) SearchByNameOrDescriptionPage(ctx context.Context, term string, page *usecase.PageRequest) ([]domain.MenuItem, int64, error) {
	return r.listPage(ctx, "(name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%') AND is_active", []any{term}, page)
}

// DistinctCategories возвращает различные категории активных позиций по возрастанию.
func (r *MenuItemRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM menu_items
		WHERE is_active
		ORDER BY category
	`

	return r.listStrings(ctx, query)
}

// DistinctDietaryTags возвращает различные теги активных позиций по возрастанию,
// NULL-теги исключаются.
func (r *MenuItemRepo) DistinctDietaryTags(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT dietary_tag
		FROM menu_items
		WHERE dietary_tag IS NOT NULL AND is_active
		ORDER BY dietary_tag
	`

	return r.listStrings(ctx, query)
}

// ExistsByName проверяет, занято ли имя среди активных позиций (без учета регистра).
func (r *MenuItemRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM menu_items
			WHERE LOWER(name) = LOWER($1) AND is_active
		)
	`

	var exists bool
	if err := r.q(ctx).QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

// ExistsByNameExcludingID — вариант ExistsByName для обновления: собственная
// запись не считается конфликтом.
func (r *MenuItemRepo) ExistsByNameExcludingID(ctx context.Context, name string, id int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM menu_items
			WHERE LOWER(name) = LOWER($1) AND id != $2 AND is_active
		)
	`

	var exists bool
	if err := r.q(ctx).QueryRow(ctx, query, name, id).Scan(&exists); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

// Insert создает запись; идентификатор и метки времени назначает база.
// created_at и updated_at получают одно и то же время транзакции.
func (r *MenuItemRepo) Insert(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO menu_items (name, description, price_cents, category, dietary_tag)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + menuItemColumns

	model, err := r.scanOne(tx.QueryRow(ctx, query,
		item.Name, item.Description, item.PriceCents, item.Category, item.DietaryTag,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, e.ErrDuplicateMenuItemName
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(model), nil
}

// Save перезаписывает изменяемые поля записи и обновляет updated_at.
func (r *MenuItemRepo) Save(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE menu_items
		SET name = $2,
			description = $3,
			price_cents = $4,
			category = $5,
			dietary_tag = $6,
			is_active = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + menuItemColumns

	model, err := r.scanOne(tx.QueryRow(ctx, query,
		item.ID, item.Name, item.Description, item.PriceCents, item.Category, item.DietaryTag, item.IsActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrMenuItemNotFound
		}
		if isUniqueViolation(err) {
			return nil, e.ErrDuplicateMenuItemName
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(model), nil
}

// list выполняет выборку по условию; orderBy — готовый фрагмент из констант этого файла.
func (r *MenuItemRepo) list(ctx context.Context, where, orderBy string, args []any) ([]domain.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE ` + where
	if orderBy != "" {
		query += " " + orderBy
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := scanModels(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToArrEntity(models), nil
}

// listPage выполняет постраничную выборку: общее число строк под тем же
// условием плюс страница с ORDER BY / LIMIT / OFFSET.
func (r *MenuItemRepo) listPage(ctx context.Context, where string, args []any, page *usecase.PageRequest) ([]domain.MenuItem, int64, error) {
	countQuery := `SELECT COUNT(*) FROM menu_items WHERE ` + where

	var total int64
	if err := r.q(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	limitPos := len(args) + 1
	query := fmt.Sprintf(
		`SELECT %s FROM menu_items WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		menuItemColumns, where, orderClause(page), limitPos, limitPos+1,
	)

	pageArgs := append(append([]any{}, args...), page.Size, page.Offset())
	rows, err := r.q(ctx).Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := scanModels(rows)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToArrEntity(models), total, nil
}

func (r *MenuItemRepo) listStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, s)
	}

	return result, rows.Err()
}

func (r *MenuItemRepo) scanOne(row pgx.Row) (*converter.MenuItemModel, error) {
	var model converter.MenuItemModel
	err := row.Scan(
		&model.ID, &model.Name, &model.Description, &model.PriceCents,
		&model.Category, &model.DietaryTag, &model.CreatedAt, &model.UpdatedAt, &model.IsActive,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

func scanModels(rows pgx.Rows) ([]converter.MenuItemModel, error) {
	models := make([]converter.MenuItemModel, 0)
	for rows.Next() {
		var model converter.MenuItemModel
		err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.PriceCents,
			&model.Category, &model.DietaryTag, &model.CreatedAt, &model.UpdatedAt, &model.IsActive,
		)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}

	return models, rows.Err()
}

// orderClause собирает ORDER BY из белого списка колонок.
// PageRequest валидируется в usecase, неизвестное поле на всякий случай
// сводится к name.
func orderClause(page *usecase.PageRequest) string {
	column, ok := sortColumns[page.SortBy]
	if !ok {
		column = "name"
	}

	direction := "ASC"
	if page.SortDir == usecase.SortDesc {
		direction = "DESC"
	}

	return column + " " + direction
}

// isUniqueViolation распознает нарушение уникального индекса (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
