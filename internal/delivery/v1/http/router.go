package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/go-backend/internal/usecase"
	"github.com/quickbite/go-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(menuItemUC usecase.MenuItemUC, health http.HandlerFunc) {
	r.router.Use(RequestID)
	r.router.Use(AccessLog(r.logger))

	r.router.Get("/healthz", health)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		miHandler := NewMenuItemHandler(menuItemUC, r.logger)
		registerMenuItemRoutes(v1, miHandler)
	})
}

func registerMenuItemRoutes(router chi.Router, miHandler *MenuItemHandler) {
	router.Route("/menu-items", func(mi chi.Router) {
		mi.Post("/", miHandler.createMenuItem)
		mi.Get("/", miHandler.listMenuItems)
		mi.Get("/search", miHandler.searchMenuItems)
		mi.Get("/price-range", miHandler.menuItemsByPriceRange)
		mi.Get("/categories", miHandler.listCategories)
		mi.Get("/dietary-tags", miHandler.listDietaryTags)
		mi.Get("/category/{category}", miHandler.menuItemsByCategory)
		mi.Get("/dietary-tag/{tag}", miHandler.menuItemsByDietaryTag)
		mi.Get("/{id}", miHandler.getMenuItemByID)
		mi.Put("/{id}", miHandler.updateMenuItem)
		mi.Patch("/{id}", miHandler.updateMenuItem)
		mi.Delete("/{id}", miHandler.deleteMenuItem)
	})
}
