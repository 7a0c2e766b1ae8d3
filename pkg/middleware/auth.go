package middleware

import (
	"net/http"
	"strings"

	"clothing-shop/pkg/utils"

	"go.uber.org/zap"
)

// TokenVerifier resolves a bearer token to the identity it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the
// token's identity in the request context.
func JWTAuth(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing Authorization Header")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			identity, err := verifier.VerifyToken(parts[1])
			if err != nil {
				logger.Warn("Invalid or expired token",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetIdentityContext(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
