package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request
	ErrNoUpdateFields    = fmt.Errorf("no update fields provided")
	ErrInvalidPriceRange = fmt.Errorf("minimum price cannot be greater than maximum price")
	ErrInvalidPageReq    = fmt.Errorf("invalid page request")

	// 404 Not Found
	ErrMenuItemNotFound = fmt.Errorf("menu item not found")

	// 409 Conflict
	ErrDuplicateMenuItemName = fmt.Errorf("menu item name already exists")
)

// NotFoundError — ошибка отсутствия позиции меню с конкретным идентификатором.
type NotFoundError struct {
	ID int64
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("Menu item not found with ID: %d", err.ID)
}

func (err *NotFoundError) Is(target error) bool {
	return target == ErrMenuItemNotFound
}

// NotFoundID создает NotFoundError для указанного идентификатора.
func NotFoundID(id int64) error {
	return &NotFoundError{ID: id}
}

// DuplicateNameError — ошибка конфликта имени среди активных позиций меню.
type DuplicateNameError struct {
	Name string
}

func (err *DuplicateNameError) Error() string {
	return fmt.Sprintf("Menu item with name '%s' already exists", err.Name)
}

func (err *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateMenuItemName
}

// DuplicateName создает DuplicateNameError для указанного имени.
func DuplicateName(name string) error {
	return &DuplicateNameError{Name: name}
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
