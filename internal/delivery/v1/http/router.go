package http

import (
	_ "github.com/DRSN-tech/storefront/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// UseCases — сценарии, доступные через HTTP.
type UseCases struct {
	Catalog usecase.CatalogUC
	Cart    usecase.CartUC
	Order   usecase.OrderUC
	Profile usecase.ProfileUC
}

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Init регистрирует маршруты. Пустой adminToken отключает /admin.
func (r *Router) Init(uc UseCases, adminToken string) {
	r.router.Use(middleware.RequestID, middleware.RealIP, requestLogger(r.logger), middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerCatalogRoutes(v1, NewCatalogHandler(uc.Catalog, r.logger))
		registerCartRoutes(v1, NewCartHandler(uc.Cart, r.logger))
		registerProfileRoutes(v1, NewProfileHandler(uc.Profile, r.logger))

		orderHandler := NewOrderHandler(uc.Order, r.logger)
		registerOrderRoutes(v1, orderHandler)

		if adminToken == "" {
			r.logger.Warnf("ADMIN_TOKEN is not set, admin routes are disabled")
			return
		}
		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(adminOnly(adminToken))
			admin.Patch("/orders/{id}/status", orderHandler.updateStatus)
		})
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Get("/categories", h.listCategories)
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/{id}", h.getProduct)
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(c chi.Router) {
		c.Get("/", h.getCart)
		c.Delete("/", h.clearCart)
		c.Post("/items", h.addItem)
		c.Patch("/items/{productID}", h.updateItem)
		c.Delete("/items/{productID}", h.removeItem)
	})
}

func registerOrderRoutes(router chi.Router, h *OrderHandler) {
	router.Route("/orders", func(o chi.Router) {
		o.Post("/", h.checkout)
		o.Get("/", h.listOrders)
		o.Get("/{id}", h.getOrder)
	})
}

func registerProfileRoutes(router chi.Router, h *ProfileHandler) {
	router.Get("/profile", h.getProfile)
	router.Put("/profile", h.updateProfile)
}
