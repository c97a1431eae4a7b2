package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/go-backend/internal/usecase"
	"github.com/quickbite/go-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// Коды ошибок API.
const (
	codeNotFound      = "MENU_ITEM_NOT_FOUND"
	codeDuplicateName = "DUPLICATE_MENU_ITEM_NAME"
	codeValidation    = "VALIDATION_ERROR"
	codeMalformedBody = "MALFORMED_REQUEST_BODY"
	codeInvalidParam  = "INVALID_PARAMETER_TYPE"
	codeInvalidArg    = "INVALID_ARGUMENT"
	codeInternal      = "INTERNAL_SERVER_ERROR"
)

// Границы цены: (0.01, 999999.99], не более 2 знаков после запятой.
var (
	minPriceBound = decimal.New(1, -2)
	maxPriceBound = decimal.New(99999999, -2)
)

func NewErrorResponse(r *http.Request, code, message string, fieldErrors []FieldError) *ErrorResponse {
	return &ErrorResponse{
		Code:        code,
		Message:     message,
		Timestamp:   time.Now(),
		Path:        r.URL.Path,
		FieldErrors: fieldErrors,
	}
}

// ToHTTPResponse переводит типизированную ошибку домена в статус, код и
// сообщение для клиента. Внутренние детали наружу не уходят: все
// нераспознанное становится 500 с общим текстом.
func ToHTTPResponse(err error) (int, string, string) {
	switch {
	case errors.Is(err, e.ErrMenuItemNotFound):
		return http.StatusNotFound, codeNotFound, err.Error()
	case errors.Is(err, e.ErrDuplicateMenuItemName):
		return http.StatusConflict, codeDuplicateName, err.Error()
	case errors.Is(err, e.ErrNoUpdateFields):
		return http.StatusBadRequest, codeInvalidArg, "No update fields provided"
	case errors.Is(err, e.ErrInvalidPriceRange):
		return http.StatusBadRequest, codeInvalidArg, "Minimum price cannot be greater than maximum price"
	case errors.Is(err, e.ErrInvalidPageReq):
		return http.StatusBadRequest, codeInvalidArg, err.Error()
	default:
		return http.StatusInternalServerError, codeInternal, "An unexpected error occurred. Please try again later."
	}
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, status int, resp *ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func WriteErrorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string, fieldErrors []FieldError) {
	WriteError(w, status, NewErrorResponse(r, code, message, fieldErrors))
}

// decodeJSON разбирает тело запроса, отклоняя неизвестные поля не надо:
// оригинальный контракт их молча игнорирует.
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// parseIDParam извлекает положительный целочисленный идентификатор из пути.
func parseIDParam(r *http.Request) (int64, *ErrorResponse) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		message := fmt.Sprintf("Invalid value '%s' for parameter 'id'. Expected type: int64", raw)
		return 0, NewErrorResponse(r, codeInvalidParam, message, nil)
	}

	if id <= 0 {
		fieldErrors := []FieldError{{Field: "id", RejectedValue: id, Message: "must be greater than 0"}}
		return 0, NewErrorResponse(r, codeValidation, "Invalid request parameters", fieldErrors)
	}

	return id, nil
}

// pageParams — разобранные параметры пагинации запроса.
type pageParams struct {
	paginated bool
	request   *usecase.PageRequest
}

// parsePageParams читает page/size/sortBy/sortDir/paginated из строки запроса.
// Значения по умолчанию повторяют оригинальный контракт: страница 0,
// размер 20, сортировка по defaultSort по возрастанию, пагинация выключена.
func parsePageParams(r *http.Request, defaultSort string) (*pageParams, *ErrorResponse) {
	q := r.URL.Query()

	page, errResp := parseIntParam(r, q, "page", 0)
	if errResp != nil {
		return nil, errResp
	}

	size, errResp := parseIntParam(r, q, "size", usecase.DefaultPageSize)
	if errResp != nil {
		return nil, errResp
	}

	paginated := false
	if raw := q.Get("paginated"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			message := fmt.Sprintf("Invalid value '%s' for parameter 'paginated'. Expected type: bool", raw)
			return nil, NewErrorResponse(r, codeInvalidParam, message, nil)
		}
		paginated = parsed
	}

	sortBy := q.Get("sortBy")
	if sortBy == "" {
		sortBy = defaultSort
	}

	sortDir := q.Get("sortDir")
	if sortDir == "" {
		sortDir = usecase.SortAsc
	}

	return &pageParams{
		paginated: paginated,
		request:   usecase.NewPageRequest(page, size, sortBy, sortDir),
	}, nil
}

func parseIntParam(r *http.Request, q url.Values, name string, defaultValue int) (int, *ErrorResponse) {
	raw := q.Get(name)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		message := fmt.Sprintf("Invalid value '%s' for parameter '%s'. Expected type: int", raw, name)
		return 0, NewErrorResponse(r, codeInvalidParam, message, nil)
	}

	return value, nil
}

// parsePriceParam читает обязательный десятичный параметр цены.
// Границы и точность те же, что у цены в теле запроса: дробная доля
// цента не отбрасывается молча, а отклоняется.
func parsePriceParam(r *http.Request, name string) (decimal.Decimal, *ErrorResponse) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		fieldErrors := []FieldError{{Field: name, RejectedValue: nil, Message: "parameter is required"}}
		return decimal.Zero, NewErrorResponse(r, codeValidation, "Invalid request parameters", fieldErrors)
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		message := fmt.Sprintf("Invalid value '%s' for parameter '%s'. Expected type: decimal", raw, name)
		return decimal.Zero, NewErrorResponse(r, codeInvalidParam, message, nil)
	}

	if value.LessThan(minPriceBound) {
		fieldErrors := []FieldError{{Field: name, RejectedValue: raw, Message: "must be greater than or equal to 0.01"}}
		return decimal.Zero, NewErrorResponse(r, codeValidation, "Invalid request parameters", fieldErrors)
	}

	if value.GreaterThan(maxPriceBound) {
		fieldErrors := []FieldError{{Field: name, RejectedValue: raw, Message: "must not exceed 999,999.99"}}
		return decimal.Zero, NewErrorResponse(r, codeValidation, "Invalid request parameters", fieldErrors)
	}

	if value.Exponent() < -2 {
		fieldErrors := []FieldError{{Field: name, RejectedValue: raw, Message: "must have at most 2 decimal places"}}
		return decimal.Zero, NewErrorResponse(r, codeValidation, "Invalid request parameters", fieldErrors)
	}

	return value, nil
}

// VALIDATION

// validateCreateDTO проверяет ограничения полей запроса на создание.
func validateCreateDTO(dto *CreateMenuItemDTO) []FieldError {
	var fieldErrors []FieldError

	if dto.Name == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "name", RejectedValue: dto.Name, Message: "Menu item name is required"})
	} else if fe := nameFieldError(dto.Name); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}

	if fe := descriptionFieldError(dto.Description); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}

	if dto.Price == nil {
		fieldErrors = append(fieldErrors, FieldError{Field: "price", RejectedValue: nil, Message: "Price is required"})
	} else if fe := priceFieldError(*dto.Price); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}

	if dto.Category == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "category", RejectedValue: dto.Category, Message: "Category is required"})
	} else if fe := categoryFieldError(dto.Category); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}

	if fe := dietaryTagFieldError(dto.DietaryTag); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}

	return fieldErrors
}

// validateUpdateDTO проверяет только переданные поля частичного обновления.
func validateUpdateDTO(dto *UpdateMenuItemDTO) []FieldError {
	var fieldErrors []FieldError

	if dto.Name != nil {
		if fe := nameFieldError(*dto.Name); fe != nil {
			fieldErrors = append(fieldErrors, *fe)
		}
	}

	if fe := descriptionFieldError(dto.Description); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}

	if dto.Price != nil {
		if fe := priceFieldError(*dto.Price); fe != nil {
			fieldErrors = append(fieldErrors, *fe)
		}
	}

	if dto.Category != nil {
		if fe := categoryFieldError(*dto.Category); fe != nil {
			fieldErrors = append(fieldErrors, *fe)
		}
	}

	if fe := dietaryTagFieldError(dto.DietaryTag); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}

	return fieldErrors
}

func nameFieldError(name string) *FieldError {
	if len(name) < 2 || len(name) > 100 {
		return &FieldError{Field: "name", RejectedValue: name, Message: "Name must be between 2 and 100 characters"}
	}
	return nil
}

func descriptionFieldError(description *string) *FieldError {
	if description != nil && len(*description) > 500 {
		return &FieldError{Field: "description", RejectedValue: *description, Message: "Description must not exceed 500 characters"}
	}
	return nil
}

func priceFieldError(price decimal.Decimal) *FieldError {
	if price.LessThan(minPriceBound) {
		return &FieldError{Field: "price", RejectedValue: price.String(), Message: "Price must be greater than 0"}
	}

	if price.GreaterThan(maxPriceBound) {
		return &FieldError{Field: "price", RejectedValue: price.String(), Message: "Price must not exceed 999,999.99"}
	}

	if price.Exponent() < -2 {
		return &FieldError{Field: "price", RejectedValue: price.String(), Message: "Price must have at most 2 decimal places"}
	}

	return nil
}

func categoryFieldError(category string) *FieldError {
	if len(category) < 2 || len(category) > 50 {
		return &FieldError{Field: "category", RejectedValue: category, Message: "Category must be between 2 and 50 characters"}
	}
	return nil
}

func dietaryTagFieldError(tag *string) *FieldError {
	if tag != nil && len(*tag) > 100 {
		return &FieldError{Field: "dietaryTag", RejectedValue: *tag, Message: "Dietary tag must not exceed 100 characters"}
	}
	return nil
}

// PRICE CONVERSION

// priceToCents переводит провалидированную цену в центы без потери точности.
func priceToCents(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).IntPart()
}

// centsToNumber форматирует центы как JSON-число с двумя знаками после запятой.
func centsToNumber(cents int64) json.Number {
	return json.Number(decimal.New(cents, -2).StringFixed(2))
}
