package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/go-backend/internal/usecase"
	"github.com/quickbite/go-backend/pkg/e"
)

type fakeUC struct {
	create           func(req *usecase.CreateMenuItemReq) (*usecase.MenuItemInfo, error)
	getByID          func(id int64) (*usecase.MenuItemInfo, error)
	list             func() ([]usecase.MenuItemInfo, error)
	listPage         func(page *usecase.PageRequest) (*usecase.MenuItemPage, error)
	update           func(id int64, req *usecase.UpdateMenuItemReq) (*usecase.MenuItemInfo, error)
	remove           func(id int64) error
	search           func(term string) ([]usecase.MenuItemInfo, error)
	searchPage       func(term string, page *usecase.PageRequest) (*usecase.MenuItemPage, error)
	byCategory       func(category string) ([]usecase.MenuItemInfo, error)
	byCategoryPage   func(category string, page *usecase.PageRequest) (*usecase.MenuItemPage, error)
	byDietaryTag     func(tag string) ([]usecase.MenuItemInfo, error)
	byDietaryTagPage func(tag string, page *usecase.PageRequest) (*usecase.MenuItemPage, error)
	byPriceRange     func(minCents, maxCents int64) ([]usecase.MenuItemInfo, error)
	byPriceRangePage func(minCents, maxCents int64, page *usecase.PageRequest) (*usecase.MenuItemPage, error)
	categories       func() ([]string, error)
	dietaryTags      func() ([]string, error)
}

func (f *fakeUC) Create(_ context.Context, req *usecase.CreateMenuItemReq) (*usecase.MenuItemInfo, error) {
	return f.create(req)
}

func (f *fakeUC) GetByID(_ context.Context, id int64) (*usecase.MenuItemInfo, error) {
	return f.getByID(id)
}

func (f *fakeUC) List(_ context.Context) ([]usecase.MenuItemInfo, error) {
	return f.list()
}

func (f *fakeUC) ListPage(_ context.Context, page *usecase.PageRequest) (*usecase.MenuItemPage, error) {
	return f.listPage(page)
}

func (f *fakeUC) Update(_ context.Context, id int64, req *usecase.UpdateMenuItemReq) (*usecase.MenuItemInfo, error) {
	return f.update(id, req)
}

func (f *fakeUC) Delete(_ context.Context, id int64) error {
	return f.remove(id)
}

func (f *fakeUC) Search(_ context.Context, term string) ([]usecase.MenuItemInfo, error) {
	return f.search(term)
}

func (f *fakeUC) SearchPage(_ context.Context, term string, page *usecase.PageRequest) (*usecase.MenuItemPage, error) {
	return f.searchPage(term, page)
}

func (f *fakeUC) ByCategory(_ context.Context, category string) ([]usecase.MenuItemInfo, error) {
	return f.byCategory(category)
}

func (f *fakeUC) ByCategoryPage(_ context.Context, category string, page *usecase.PageRequest) (*usecase.MenuItemPage, error) {
	return f.byCategoryPage(category, page)
}

func (f *fakeUC) ByDietaryTag(_ context.Context, tag string) ([]usecase.MenuItemInfo, error) {
	return f.byDietaryTag(tag)
}

func (f *fakeUC) ByDietaryTagPage(_ context.Context, tag string, page *usecase.PageRequest) (*usecase.MenuItemPage, error) {
	return f.byDietaryTagPage(tag, page)
}

func (f *fakeUC) ByPriceRange(_ context.Context, minCents, maxCents int64) ([]usecase.MenuItemInfo, error) {
	return f.byPriceRange(minCents, maxCents)
}

func (f *fakeUC) ByPriceRangePage(_ context.Context, minCents, maxCents int64, page *usecase.PageRequest) (*usecase.MenuItemPage, error) {
	return f.byPriceRangePage(minCents, maxCents, page)
}

func (f *fakeUC) Categories(_ context.Context) ([]string, error) {
	return f.categories()
}

func (f *fakeUC) DietaryTags(_ context.Context) ([]string, error) {
	return f.dietaryTags()
}

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{})            {}
func (noopLogger) Infof(format string, args ...interface{})             {}
func (noopLogger) Warnf(format string, args ...interface{})             {}
func (noopLogger) Errorf(err error, format string, args ...interface{}) {}

func newTestRouter(uc usecase.MenuItemUC) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", func(v1 chi.Router) {
		registerMenuItemRoutes(v1, NewMenuItemHandler(uc, noopLogger{}))
	})
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func sampleInfo(id int64, name string, cents int64) *usecase.MenuItemInfo {
	return &usecase.MenuItemInfo{
		ID:         id,
		Name:       name,
		PriceCents: cents,
		Category:   "Pizza",
		CreatedAt:  time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateMenuItem(t *testing.T) {
	t.Run("201 with formatted price", func(t *testing.T) {
		uc := &fakeUC{
			create: func(req *usecase.CreateMenuItemReq) (*usecase.MenuItemInfo, error) {
				if req.PriceCents != 1250 {
					t.Errorf("price cents = %d, want 1250", req.PriceCents)
				}
				return sampleInfo(1, req.Name, req.PriceCents), nil
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodPost, "/api/v1/menu-items",
			`{"name":"Margherita","price":12.50,"category":"Pizza"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"price":12.50`) {
			t.Errorf("price not serialized with two decimals: %s", rec.Body.String())
		}
	})

	t.Run("400 on malformed body", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(&fakeUC{}), http.MethodPost, "/api/v1/menu-items", `{"name":`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if resp := decodeErrorResponse(t, rec); resp.Code != codeMalformedBody {
			t.Errorf("code = %q, want %q", resp.Code, codeMalformedBody)
		}
	})

	t.Run("400 with field errors on invalid payload", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(&fakeUC{}), http.MethodPost, "/api/v1/menu-items",
			`{"name":"A","price":-1,"category":""}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		resp := decodeErrorResponse(t, rec)
		if resp.Code != codeValidation {
			t.Errorf("code = %q, want %q", resp.Code, codeValidation)
		}
		if len(resp.FieldErrors) != 3 {
			t.Errorf("len(fieldErrors) = %d, want 3: %+v", len(resp.FieldErrors), resp.FieldErrors)
		}
	})

	t.Run("400 on price with too many decimals", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(&fakeUC{}), http.MethodPost, "/api/v1/menu-items",
			`{"name":"Margherita","price":12.505,"category":"Pizza"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("409 on duplicate name", func(t *testing.T) {
		uc := &fakeUC{
			create: func(req *usecase.CreateMenuItemReq) (*usecase.MenuItemInfo, error) {
				return nil, e.DuplicateName(req.Name)
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodPost, "/api/v1/menu-items",
			`{"name":"Margherita","price":12.50,"category":"Pizza"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
		resp := decodeErrorResponse(t, rec)
		if resp.Code != codeDuplicateName {
			t.Errorf("code = %q, want %q", resp.Code, codeDuplicateName)
		}
		if want := "Menu item with name 'Margherita' already exists"; resp.Message != want {
			t.Errorf("message = %q, want %q", resp.Message, want)
		}
	})
}

func TestGetMenuItemByID(t *testing.T) {
	t.Run("200 on existing item", func(t *testing.T) {
		uc := &fakeUC{
			getByID: func(id int64) (*usecase.MenuItemInfo, error) {
				return sampleInfo(id, "Caesar Salad", 899), nil
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodGet, "/api/v1/menu-items/7", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"price":8.99`) {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("404 when missing", func(t *testing.T) {
		uc := &fakeUC{
			getByID: func(id int64) (*usecase.MenuItemInfo, error) {
				return nil, e.NotFoundID(id)
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodGet, "/api/v1/menu-items/42", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		resp := decodeErrorResponse(t, rec)
		if resp.Code != codeNotFound {
			t.Errorf("code = %q, want %q", resp.Code, codeNotFound)
		}
		if want := "Menu item not found with ID: 42"; resp.Message != want {
			t.Errorf("message = %q, want %q", resp.Message, want)
		}
	})

	t.Run("400 on non-numeric id", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(&fakeUC{}), http.MethodGet, "/api/v1/menu-items/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		resp := decodeErrorResponse(t, rec)
		if resp.Code != codeInvalidParam {
			t.Errorf("code = %q, want %q", resp.Code, codeInvalidParam)
		}
		if want := "Invalid value 'abc' for parameter 'id'. Expected type: int64"; resp.Message != want {
			t.Errorf("message = %q, want %q", resp.Message, want)
		}
	})

	t.Run("400 on non-positive id", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(&fakeUC{}), http.MethodGet, "/api/v1/menu-items/0", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if resp := decodeErrorResponse(t, rec); resp.Code != codeValidation {
			t.Errorf("code = %q, want %q", resp.Code, codeValidation)
		}
	})
}

func TestListMenuItems(t *testing.T) {
	t.Run("plain list by default", func(t *testing.T) {
		uc := &fakeUC{
			list: func() ([]usecase.MenuItemInfo, error) {
				return []usecase.MenuItemInfo{*sampleInfo(1, "Margherita", 1250)}, nil
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodGet, "/api/v1/menu-items", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "[") {
			t.Errorf("expected a bare array, got: %s", rec.Body.String())
		}
	})

	t.Run("page envelope when paginated", func(t *testing.T) {
		uc := &fakeUC{
			listPage: func(page *usecase.PageRequest) (*usecase.MenuItemPage, error) {
				if page.Page != 1 || page.Size != 10 {
					t.Errorf("page = %d size = %d, want 1 and 10", page.Page, page.Size)
				}
				return &usecase.MenuItemPage{
					Items:         []usecase.MenuItemInfo{*sampleInfo(1, "Margherita", 1250)},
					Page:          page.Page,
					Size:          page.Size,
					SortBy:        page.SortBy,
					SortDir:       page.SortDir,
					TotalElements: 21,
				}, nil
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodGet,
			"/api/v1/menu-items?paginated=true&page=1&size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var page PageResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
			t.Fatalf("failed to decode page: %v", err)
		}
		if page.TotalElements != 21 || page.TotalPages != 3 {
			t.Errorf("totals = %d/%d, want 21/3", page.TotalElements, page.TotalPages)
		}
	})

	t.Run("400 on non-numeric page", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(&fakeUC{}), http.MethodGet, "/api/v1/menu-items?page=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if resp := decodeErrorResponse(t, rec); resp.Code != codeInvalidParam {
			t.Errorf("code = %q, want %q", resp.Code, codeInvalidParam)
		}
	})
}

func TestUpdateMenuItem(t *testing.T) {
	t.Run("200 with only provided fields forwarded", func(t *testing.T) {
		uc := &fakeUC{
			update: func(id int64, req *usecase.UpdateMenuItemReq) (*usecase.MenuItemInfo, error) {
				if req.Name != nil || req.PriceCents == nil || *req.PriceCents != 1399 {
					t.Errorf("unexpected update request: %+v", req)
				}
				return sampleInfo(id, "Margherita", *req.PriceCents), nil
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodPatch, "/api/v1/menu-items/5", `{"price":13.99}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("PUT routes to the same handler", func(t *testing.T) {
		uc := &fakeUC{
			update: func(id int64, req *usecase.UpdateMenuItemReq) (*usecase.MenuItemInfo, error) {
				return sampleInfo(id, "Margherita", 1399), nil
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodPut, "/api/v1/menu-items/5", `{"price":13.99}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("400 on empty update", func(t *testing.T) {
		uc := &fakeUC{
			update: func(id int64, req *usecase.UpdateMenuItemReq) (*usecase.MenuItemInfo, error) {
				return nil, e.ErrNoUpdateFields
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodPatch, "/api/v1/menu-items/5", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		resp := decodeErrorResponse(t, rec)
		if resp.Code != codeInvalidArg {
			t.Errorf("code = %q, want %q", resp.Code, codeInvalidArg)
		}
		if want := "No update fields provided"; resp.Message != want {
			t.Errorf("message = %q, want %q", resp.Message, want)
		}
	})
}

func TestDeleteMenuItem(t *testing.T) {
	t.Run("204 on success", func(t *testing.T) {
		uc := &fakeUC{
			remove: func(id int64) error { return nil },
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodDelete, "/api/v1/menu-items/3", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("expected empty body, got: %s", rec.Body.String())
		}
	})

	t.Run("404 when missing", func(t *testing.T) {
		uc := &fakeUC{
			remove: func(id int64) error { return e.NotFoundID(id) },
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodDelete, "/api/v1/menu-items/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestSearchMenuItems(t *testing.T) {
	uc := &fakeUC{
		search: func(term string) ([]usecase.MenuItemInfo, error) {
			if term != "pizza" {
				t.Errorf("term = %q, want %q", term, "pizza")
			}
			return nil, nil
		},
	}

	rec := doRequest(t, newTestRouter(uc), http.MethodGet, "/api/v1/menu-items/search?q=pizza", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestMenuItemsByPriceRange(t *testing.T) {
	t.Run("converts bounds to cents", func(t *testing.T) {
		uc := &fakeUC{
			byPriceRange: func(minCents, maxCents int64) ([]usecase.MenuItemInfo, error) {
				if minCents != 500 || maxCents != 1550 {
					t.Errorf("bounds = %d..%d, want 500..1550", minCents, maxCents)
				}
				return nil, nil
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodGet,
			"/api/v1/menu-items/price-range?minPrice=5.00&maxPrice=15.50", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("400 on fractional cents in a bound", func(t *testing.T) {
		uc := &fakeUC{
			byPriceRange: func(minCents, maxCents int64) ([]usecase.MenuItemInfo, error) {
				t.Fatal("query must not run for a sub-cent bound")
				return nil, nil
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodGet,
			"/api/v1/menu-items/price-range?minPrice=1.005&maxPrice=2.005", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if resp := decodeErrorResponse(t, rec); resp.Code != codeValidation {
			t.Errorf("code = %q, want %q", resp.Code, codeValidation)
		}
	})

	t.Run("400 on bound above the price maximum", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(&fakeUC{}), http.MethodGet,
			"/api/v1/menu-items/price-range?minPrice=1.00&maxPrice=100000000000000000000.00", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("400 when a bound is missing", func(t *testing.T) {
		rec := doRequest(t, newTestRouter(&fakeUC{}), http.MethodGet,
			"/api/v1/menu-items/price-range?maxPrice=15.50", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("400 on inverted range", func(t *testing.T) {
		uc := &fakeUC{
			byPriceRange: func(minCents, maxCents int64) ([]usecase.MenuItemInfo, error) {
				return nil, e.ErrInvalidPriceRange
			},
		}

		rec := doRequest(t, newTestRouter(uc), http.MethodGet,
			"/api/v1/menu-items/price-range?minPrice=20.00&maxPrice=10.00", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		resp := decodeErrorResponse(t, rec)
		if want := "Minimum price cannot be greater than maximum price"; resp.Message != want {
			t.Errorf("message = %q, want %q", resp.Message, want)
		}
	})
}

func TestDistinctListings(t *testing.T) {
	uc := &fakeUC{
		categories:  func() ([]string, error) { return []string{"Dessert", "Pizza"}, nil },
		dietaryTags: func() ([]string, error) { return []string{"vegan"}, nil },
	}

	router := newTestRouter(uc)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/menu-items/categories", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Dessert") {
		t.Errorf("categories: status = %d, body: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/menu-items/dietary-tags", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "vegan") {
		t.Errorf("dietary tags: status = %d, body: %s", rec.Code, rec.Body.String())
	}
}
