package wire

import (
	"clothing-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProduct(r chi.Router, productHandler *adaptor.ProductHandler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.GetProducts)
		r.Post("/", productHandler.CreateProduct)
		r.Put("/{product_name}", productHandler.UpdateProduct)
		r.Delete("/{product_name}", productHandler.DeleteProduct)
	})
}
