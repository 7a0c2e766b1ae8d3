package wire

import (
	"clothing-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler) {
	r.Get("/api/orders", orderHandler.GetOrders)
}
