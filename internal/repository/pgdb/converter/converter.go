//go:generate goverter gen github.com/quickbite/go-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/quickbite/go-backend/internal/domain"
)

// MenuItemConverter преобразует сущности MenuItem между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerString
type MenuItemConverter interface {
	ToModel(entity *domain.MenuItem) *MenuItemModel
	ToEntity(model *MenuItemModel) *domain.MenuItem
	ToArrEntity(models []MenuItemModel) []domain.MenuItem
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertPointerString(s *string) *string {
	return s
}
