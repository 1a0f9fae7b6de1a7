package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/sarabarbaraam/CompraBarbara/internal/usecase"
	"github.com/sarabarbaraam/CompraBarbara/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(clientUC usecase.ClientUC, itemUC usecase.ItemUC, purchaseUC usecase.PurchaseUC) {
	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerClientRoutes(v1, NewClientHandler(clientUC, r.logger))
		registerItemRoutes(v1, NewItemHandler(itemUC, r.logger))
		registerPurchaseRoutes(v1, NewPurchaseHandler(purchaseUC, r.logger))
	})
}

// Сегмент {key} — функциональный ключ сущности: у клиента это номер
// телефона (PATCH/DELETE) и ID (GET), у товара — имя и ID, у покупки — ID.
func registerClientRoutes(router chi.Router, h *ClientHandler) {
	router.Route("/clients", func(cl chi.Router) {
		cl.Post("/", h.create)
		cl.Get("/", h.list)
		cl.Get("/search", h.search)
		cl.Get("/{key}", h.sheet)
		cl.Patch("/{key}", h.update)
		cl.Delete("/{key}", h.delete)
	})
}

func registerItemRoutes(router chi.Router, h *ItemHandler) {
	router.Route("/items", func(it chi.Router) {
		it.Post("/", h.create)
		it.Get("/", h.list)
		it.Get("/search", h.search)
		it.Get("/{key}", h.sheet)
		it.Patch("/{key}", h.update)
		it.Delete("/{key}", h.delete)
	})
}

func registerPurchaseRoutes(router chi.Router, h *PurchaseHandler) {
	router.Route("/purchases", func(pu chi.Router) {
		pu.Post("/", h.create)
		pu.Get("/", h.list)
		pu.Get("/search", h.search)
		pu.Get("/{key}", h.sheet)
		pu.Patch("/{key}", h.update)
		pu.Delete("/{key}", h.delete)
	})
}
