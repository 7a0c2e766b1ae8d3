package wire

import (
	"clothing-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Get("/api/users", userHandler.GetUsers)
}
