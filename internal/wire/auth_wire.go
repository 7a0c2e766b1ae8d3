package wire

import (
	"clothing-shop/internal/adaptor"
	"clothing-shop/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	verifier middleware.TokenVerifier,
	limiter middleware.Limiter,
	log *zap.Logger,
) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)

		if limiter != nil {
			r.With(middleware.RateLimit(limiter, "login", log)).Post("/login", authHandler.Login)
		} else {
			r.Post("/login", authHandler.Login)
		}

		r.With(middleware.JWTAuth(verifier, log)).Get("/protected", authHandler.Protected)
	})
}
