package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/quickbite/go-backend/internal/domain"
	"github.com/quickbite/go-backend/pkg/e"
)

// MENU ITEM USECASE

// CreateMenuItemReq — запрос на создание позиции меню.
// Валидация формы выполняется на границе (delivery), цена уже в центах.
type CreateMenuItemReq struct {
	Name        string
	Description *string
	PriceCents  int64
	Category    string
	DietaryTag  *string
}

// UpdateMenuItemReq — запрос на частичное обновление позиции меню.
// nil означает "поле не передано": существующее значение не перезаписывается.
// Указатель на пустую строку — настоящая перезапись.
type UpdateMenuItemReq struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Category    *string
	DietaryTag  *string
}

// HasUpdates сообщает, передано ли хотя бы одно поле.
func (r *UpdateMenuItemReq) HasUpdates() bool {
	return r.Name != nil || r.Description != nil || r.PriceCents != nil ||
		r.Category != nil || r.DietaryTag != nil
}

// MenuItemInfo — DTO с информацией о позиции меню для внешнего использования.
// IsActive наружу не отдается.
type MenuItemInfo struct {
	ID          int64
	Name        string
	Description *string
	PriceCents  int64
	Category    string
	DietaryTag  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PAGINATION

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	SortAsc  = "asc"
	SortDesc = "desc"
)

// sortFields — допустимые поля сортировки (имена полей API).
// Repo-слой переводит их в имена колонок; значение вне списка никогда
// не попадает в текст SQL.
var sortFields = map[string]struct{}{
	"id":          {},
	"name":        {},
	"description": {},
	"price":       {},
	"category":    {},
	"dietaryTag":  {},
	"createdAt":   {},
	"updatedAt":   {},
}

// PageRequest описывает запрошенную страницу результата: номер страницы
// (с нуля), размер, поле и направление сортировки.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

func NewPageRequest(page, size int, sortBy, sortDir string) *PageRequest {
	return &PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  sortBy,
		SortDir: strings.ToLower(sortDir),
	}
}

// Validate проверяет границы страницы и допустимость поля сортировки.
func (p *PageRequest) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("page must not be negative: %w", e.ErrInvalidPageReq)
	}

	if p.Size < 1 || p.Size > MaxPageSize {
		return fmt.Errorf("size must be between 1 and %d: %w", MaxPageSize, e.ErrInvalidPageReq)
	}

	if p.SortDir != SortAsc && p.SortDir != SortDesc {
		return fmt.Errorf("sort direction must be asc or desc: %w", e.ErrInvalidPageReq)
	}

	if _, ok := sortFields[p.SortBy]; !ok {
		return fmt.Errorf("unknown sort field '%s': %w", p.SortBy, e.ErrInvalidPageReq)
	}

	return nil
}

// Offset возвращает смещение первой строки страницы.
func (p *PageRequest) Offset() int {
	return p.Page * p.Size
}

// MenuItemPage — страница позиций меню с общим числом элементов.
type MenuItemPage struct {
	Items         []MenuItemInfo
	Page          int
	Size          int
	SortBy        string
	SortDir       string
	TotalElements int64
}

// MAPPERS

// NewMenuItemFromCreate переносит поля запроса в новую доменную запись.
// ID, метки времени и IsActive заполняются хранилищем.
func NewMenuItemFromCreate(req *CreateMenuItemReq) *domain.MenuItem {
	return domain.NewMenuItem(req.Name, req.Description, req.PriceCents, req.Category, req.DietaryTag)
}

// NewMenuItemInfo копирует доменную запись в DTO ответа без изменений.
func NewMenuItemInfo(item *domain.MenuItem) MenuItemInfo {
	return MenuItemInfo{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		PriceCents:  item.PriceCents,
		Category:    item.Category,
		DietaryTag:  item.DietaryTag,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// NewMenuItemInfos конвертирует срез доменных записей в DTO.
func NewMenuItemInfos(items []domain.MenuItem) []MenuItemInfo {
	infos := make([]MenuItemInfo, 0, len(items))
	for i := range items {
		infos = append(infos, NewMenuItemInfo(&items[i]))
	}
	return infos
}

// ApplyUpdateReq перезаписывает в существующей записи только переданные поля.
// Отсутствующее (nil) поле оставляет текущее значение нетронутым.
func ApplyUpdateReq(item *domain.MenuItem, req *UpdateMenuItemReq) {
	if req.Name != nil {
		item.Name = *req.Name
	}

	if req.Description != nil {
		item.Description = req.Description
	}

	if req.PriceCents != nil {
		item.PriceCents = *req.PriceCents
	}

	if req.Category != nil {
		item.Category = *req.Category
	}

	if req.DietaryTag != nil {
		item.DietaryTag = req.DietaryTag
	}
}

func NewMenuItemPage(items []MenuItemInfo, page *PageRequest, total int64) *MenuItemPage {
	return &MenuItemPage{
		Items:         items,
		Page:          page.Page,
		Size:          page.Size,
		SortBy:        page.SortBy,
		SortDir:       page.SortDir,
		TotalElements: total,
	}
}
