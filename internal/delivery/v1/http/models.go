package http

import (
	"encoding/json"
	"time"

	"github.com/quickbite/go-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

// CreateMenuItemDTO — тело запроса на создание позиции меню.
type CreateMenuItemDTO struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    string           `json:"category"`
	DietaryTag  *string          `json:"dietaryTag"`
}

// UpdateMenuItemDTO — тело запроса на частичное обновление.
// Отсутствующее поле не перезаписывает текущее значение; переданная
// пустая строка — настоящая перезапись.
type UpdateMenuItemDTO struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	DietaryTag  *string          `json:"dietaryTag"`
}

// MenuItemResponse — представление позиции меню в ответах API.
// isActive наружу не отдается.
type MenuItemResponse struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Price       json.Number `json:"price"`
	Category    string      `json:"category"`
	DietaryTag  *string     `json:"dietaryTag"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// PageResponse — страница позиций меню с эхом параметров страницы.
type PageResponse struct {
	Content       []MenuItemResponse `json:"content"`
	Page          int                `json:"page"`
	Size          int                `json:"size"`
	SortBy        string             `json:"sortBy"`
	SortDir       string             `json:"sortDir"`
	TotalElements int64              `json:"totalElements"`
	TotalPages    int                `json:"totalPages"`
}

// ErrorResponse — единый конверт ошибок API.
type ErrorResponse struct {
	Code        string       `json:"code"`
	Message     string       `json:"message"`
	Timestamp   time.Time    `json:"timestamp"`
	Path        string       `json:"path"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

// FieldError описывает нарушение ограничения конкретного поля запроса.
type FieldError struct {
	Field         string `json:"field"`
	RejectedValue any    `json:"rejectedValue"`
	Message       string `json:"message"`
}

func toCreateReq(dto *CreateMenuItemDTO) *usecase.CreateMenuItemReq {
	return &usecase.CreateMenuItemReq{
		Name:        dto.Name,
		Description: dto.Description,
		PriceCents:  priceToCents(*dto.Price),
		Category:    dto.Category,
		DietaryTag:  dto.DietaryTag,
	}
}

func toUpdateReq(dto *UpdateMenuItemDTO) *usecase.UpdateMenuItemReq {
	req := &usecase.UpdateMenuItemReq{
		Name:        dto.Name,
		Description: dto.Description,
		Category:    dto.Category,
		DietaryTag:  dto.DietaryTag,
	}

	if dto.Price != nil {
		cents := priceToCents(*dto.Price)
		req.PriceCents = &cents
	}

	return req
}

func toMenuItemResponse(info *usecase.MenuItemInfo) MenuItemResponse {
	return MenuItemResponse{
		ID:          info.ID,
		Name:        info.Name,
		Description: info.Description,
		Price:       centsToNumber(info.PriceCents),
		Category:    info.Category,
		DietaryTag:  info.DietaryTag,
		CreatedAt:   info.CreatedAt,
		UpdatedAt:   info.UpdatedAt,
	}
}

func toMenuItemResponses(infos []usecase.MenuItemInfo) []MenuItemResponse {
	result := make([]MenuItemResponse, 0, len(infos))
	for i := range infos {
		result = append(result, toMenuItemResponse(&infos[i]))
	}
	return result
}

func toPageResponse(page *usecase.MenuItemPage) PageResponse {
	totalPages := int(page.TotalElements) / page.Size
	if int(page.TotalElements)%page.Size != 0 {
		totalPages++
	}

	return PageResponse{
		Content:       toMenuItemResponses(page.Items),
		Page:          page.Page,
		Size:          page.Size,
		SortBy:        page.SortBy,
		SortDir:       page.SortDir,
		TotalElements: page.TotalElements,
		TotalPages:    totalPages,
	}
}
