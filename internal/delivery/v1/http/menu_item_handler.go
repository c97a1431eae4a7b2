package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/go-backend/internal/usecase"
	"github.com/quickbite/go-backend/pkg/logger"
)

type MenuItemHandler struct {
	menuItemUsecase usecase.MenuItemUC
	logger          logger.Logger
}

func NewMenuItemHandler(menuItemUsecase usecase.MenuItemUC, logger logger.Logger) *MenuItemHandler {
	return &MenuItemHandler{menuItemUsecase: menuItemUsecase, logger: logger}
}

// createMenuItem
//
//	@Summary		Создание позиции меню
//	@Description	Создает новую позицию меню с уникальным именем
//	@Tags			menu-items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateMenuItemDTO	true	"Позиция меню"
//	@Success		201		{object}	MenuItemResponse	"Успешное создание"
//	@Failure		400		{object}	ErrorResponse		"Ошибка валидации"
//	@Failure		409		{object}	ErrorResponse		"Имя уже занято"
//	@Router			/api/v1/menu-items [post]
func (h *MenuItemHandler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var dto CreateMenuItemDTO
	if err := decodeJSON(r, &dto); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, codeMalformedBody, err.Error())
		WriteErrorResponse(w, r, http.StatusBadRequest, codeMalformedBody, "Invalid request body format", nil)
		return
	}

	if fieldErrors := validateCreateDTO(&dto); len(fieldErrors) > 0 {
		h.logger.Warnf("%d %s: %d field(s) rejected", http.StatusBadRequest, codeValidation, len(fieldErrors))
		WriteErrorResponse(w, r, http.StatusBadRequest, codeValidation, "Invalid request parameters", fieldErrors)
		return
	}

	info, err := h.menuItemUsecase.Create(r.Context(), toCreateReq(&dto))
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toMenuItemResponse(info))
}

// getMenuItemByID
//
//	@Summary	Получение позиции меню по идентификатору
//	@Tags		menu-items
//	@Produce	json
//	@Param		id	path		int					true	"Идентификатор позиции"
//	@Success	200	{object}	MenuItemResponse	"Найденная позиция"
//	@Failure	404	{object}	ErrorResponse		"Позиция не найдена"
//	@Router		/api/v1/menu-items/{id} [get]
func (h *MenuItemHandler) getMenuItemByID(w http.ResponseWriter, r *http.Request) {
	id, errResp := parseIDParam(r)
	if errResp != nil {
		h.writeResponseError(w, r, errResp)
		return
	}

	info, err := h.menuItemUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toMenuItemResponse(info))
}

// listMenuItems
//
//	@Summary	Список активных позиций меню
//	@Tags		menu-items
//	@Produce	json
//	@Param		paginated	query		bool	false	"Вернуть страницу вместо полного списка"
//	@Param		page		query		int		false	"Номер страницы (с нуля)"
//	@Param		size		query		int		false	"Размер страницы"
//	@Param		sortBy		query		string	false	"Поле сортировки"
//	@Param		sortDir		query		string	false	"Направление сортировки: asc или desc"
//	@Success	200			{array}		MenuItemResponse
//	@Failure	400			{object}	ErrorResponse	"Некорректные параметры"
//	@Router		/api/v1/menu-items [get]
func (h *MenuItemHandler) listMenuItems(w http.ResponseWriter, r *http.Request) {
	params, errResp := parsePageParams(r, "name")
	if errResp != nil {
		h.writeResponseError(w, r, errResp)
		return
	}

	if params.paginated {
		page, err := h.menuItemUsecase.ListPage(r.Context(), params.request)
		if err != nil {
			h.writeUsecaseError(w, r, err)
			return
		}
		WriteSuccess(w, http.StatusOK, toPageResponse(page))
		return
	}

	infos, err := h.menuItemUsecase.List(r.Context())
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toMenuItemResponses(infos))
}

// updateMenuItem
//
//	@Summary		Частичное обновление позиции меню
//	@Description	Обновляет только переданные поля; отсутствующие остаются без изменений
//	@Tags			menu-items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Идентификатор позиции"
//	@Param			request	body		UpdateMenuItemDTO	true	"Изменяемые поля"
//	@Success		200		{object}	MenuItemResponse	"Обновленная позиция"
//	@Failure		400		{object}	ErrorResponse		"Ошибка валидации или пустое обновление"
//	@Failure		404		{object}	ErrorResponse		"Позиция не найдена"
//	@Failure		409		{object}	ErrorResponse		"Имя уже занято"
//	@Router			/api/v1/menu-items/{id} [patch]
func (h *MenuItemHandler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, errResp := parseIDParam(r)
	if errResp != nil {
		h.writeResponseError(w, r, errResp)
		return
	}

	var dto UpdateMenuItemDTO
	if err := decodeJSON(r, &dto); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, codeMalformedBody, err.Error())
		WriteErrorResponse(w, r, http.StatusBadRequest, codeMalformedBody, "Invalid request body format", nil)
		return
	}

	if fieldErrors := validateUpdateDTO(&dto); len(fieldErrors) > 0 {
		h.logger.Warnf("%d %s: %d field(s) rejected", http.StatusBadRequest, codeValidation, len(fieldErrors))
		WriteErrorResponse(w, r, http.StatusBadRequest, codeValidation, "Invalid request parameters", fieldErrors)
		return
	}

	info, err := h.menuItemUsecase.Update(r.Context(), id, toUpdateReq(&dto))
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toMenuItemResponse(info))
}

// deleteMenuItem
//
//	@Summary		Удаление позиции меню
//	@Description	Мягкое удаление: позиция помечается неактивной и исчезает из выдачи
//	@Tags			menu-items
//	@Param			id	path	int	true	"Идентификатор позиции"
//	@Success		204	"Позиция удалена"
//	@Failure		404	{object}	ErrorResponse	"Позиция не найдена"
//	@Router			/api/v1/menu-items/{id} [delete]
func (h *MenuItemHandler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, errResp := parseIDParam(r)
	if errResp != nil {
		h.writeResponseError(w, r, errResp)
		return
	}

	if err := h.menuItemUsecase.Delete(r.Context(), id); err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// searchMenuItems
//
//	@Summary		Поиск позиций меню
//	@Description	Поиск по подстроке в имени и описании без учета регистра
//	@Tags			menu-items
//	@Produce		json
//	@Param			q	query		string	false	"Строка поиска"
//	@Success		200	{array}		MenuItemResponse
//	@Failure		400	{object}	ErrorResponse	"Некорректные параметры"
//	@Router			/api/v1/menu-items/search [get]
func (h *MenuItemHandler) searchMenuItems(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	params, errResp := parsePageParams(r, "name")
	if errResp != nil {
		h.writeResponseError(w, r, errResp)
		return
	}

	if params.paginated {
		page, err := h.menuItemUsecase.SearchPage(r.Context(), term, params.request)
		if err != nil {
			h.writeUsecaseError(w, r, err)
			return
		}
		WriteSuccess(w, http.StatusOK, toPageResponse(page))
		return
	}

	infos, err := h.menuItemUsecase.Search(r.Context(), term)
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toMenuItemResponses(infos))
}

// menuItemsByCategory
//
//	@Summary	Позиции меню по категории
//	@Tags		menu-items
//	@Produce	json
//	@Param		category	path		string	true	"Категория"
//	@Success	200			{array}		MenuItemResponse
//	@Failure	400			{object}	ErrorResponse	"Некорректные параметры"
//	@Router		/api/v1/menu-items/category/{category} [get]
func (h *MenuItemHandler) menuItemsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	params, errResp := parsePageParams(r, "name")
	if errResp != nil {
		h.writeResponseError(w, r, errResp)
		return
	}

	if params.paginated {
		page, err := h.menuItemUsecase.ByCategoryPage(r.Context(), category, params.request)
		if err != nil {
			h.writeUsecaseError(w, r, err)
			return
		}
		WriteSuccess(w, http.StatusOK, toPageResponse(page))
		return
	}

	infos, err := h.menuItemUsecase.ByCategory(r.Context(), category)
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toMenuItemResponses(infos))
}

// menuItemsByDietaryTag
//
//	@Summary	Позиции меню по диетическому тегу
//	@Tags		menu-items
//	@Produce	json
//	@Param		tag	path		string	true	"Диетический тег"
//	@Success	200	{array}		MenuItemResponse
//	@Failure	400	{object}	ErrorResponse	"Некорректные параметры"
//	@Router		/api/v1/menu-items/dietary-tag/{tag} [get]
func (h *MenuItemHandler) menuItemsByDietaryTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")

	params, errResp := parsePageParams(r, "name")
	if errResp != nil {
		h.writeResponseError(w, r, errResp)
		return
	}

	if params.paginated {
		page, err := h.menuItemUsecase.ByDietaryTagPage(r.Context(), tag, params.request)
		if err != nil {
			h.writeUsecaseError(w, r, err)
			return
		}
		WriteSuccess(w, http.StatusOK, toPageResponse(page))
		return
	}

	infos, err := h.menuItemUsecase.ByDietaryTag(r.Context(), tag)
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toMenuItemResponses(infos))
}

// menuItemsByPriceRange
//
//	@Summary	Позиции меню в диапазоне цен
//	@Tags		menu-items
//	@Produce	json
//	@Param		minPrice	query		number	true	"Минимальная цена"
//	@Param		maxPrice	query		number	true	"Максимальная цена"
//	@Success	200			{array}		MenuItemResponse
//	@Failure	400			{object}	ErrorResponse	"Некорректные параметры"
//	@Router		/api/v1/menu-items/price-range [get]
func (h *MenuItemHandler) menuItemsByPriceRange(w http.ResponseWriter, r *http.Request) {
	minPrice, errResp := parsePriceParam(r, "minPrice")
	if errResp != nil {
		h.writeResponseError(w, r, errResp)
		return
	}

	maxPrice, errResp := parsePriceParam(r, "maxPrice")
	if errResp != nil {
		h.writeResponseError(w, r, errResp)
		return
	}

	params, errResp := parsePageParams(r, "price")
	if errResp != nil {
		h.writeResponseError(w, r, errResp)
		return
	}

	minCents, maxCents := priceToCents(minPrice), priceToCents(maxPrice)

	if params.paginated {
		page, err := h.menuItemUsecase.ByPriceRangePage(r.Context(), minCents, maxCents, params.request)
		if err != nil {
			h.writeUsecaseError(w, r, err)
			return
		}
		WriteSuccess(w, http.StatusOK, toPageResponse(page))
		return
	}

	infos, err := h.menuItemUsecase.ByPriceRange(r.Context(), minCents, maxCents)
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toMenuItemResponses(infos))
}

// listCategories
//
//	@Summary	Список категорий активных позиций
//	@Tags		menu-items
//	@Produce	json
//	@Success	200	{array}	string
//	@Router		/api/v1/menu-items/categories [get]
func (h *MenuItemHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.menuItemUsecase.Categories(r.Context())
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, categories)
}

// listDietaryTags
//
//	@Summary	Список диетических тегов активных позиций
//	@Tags		menu-items
//	@Produce	json
//	@Success	200	{array}	string
//	@Router		/api/v1/menu-items/dietary-tags [get]
func (h *MenuItemHandler) listDietaryTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.menuItemUsecase.DietaryTags(r.Context())
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, tags)
}

func (h *MenuItemHandler) writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := ToHTTPResponse(err)

	if status >= http.StatusInternalServerError {
		h.logger.Errorf(err, "%d %s", status, code)
	} else {
		h.logger.Warnf("%d %s: %s", status, code, err.Error())
	}

	WriteErrorResponse(w, r, status, code, message, nil)
}

func (h *MenuItemHandler) writeResponseError(w http.ResponseWriter, r *http.Request, errResp *ErrorResponse) {
	status := http.StatusBadRequest
	h.logger.Warnf("%d %s: %s", status, errResp.Code, errResp.Message)
	WriteError(w, status, errResp)
}
