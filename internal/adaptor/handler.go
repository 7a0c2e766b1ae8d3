package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"clothing-shop/internal/usecase"
	"clothing-shop/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Product *ProductHandler
	Order   *OrderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Product: NewProductHandler(service.Product, log),
		Order:   NewOrderHandler(service.Order, log),
	}
}

// Home handles GET /
func Home(w http.ResponseWriter, _ *http.Request) {
	utils.ResponseMessage(w, "Welcome to the Online Clothing Shop API!")
}

// decodeStrict decodes a JSON body and rejects fields the target does not declare.
func decodeStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// handleServiceError maps service errors onto responses. Only credential and
// validation failures get their own status; the rest is a generic 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid credentials")

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		var ve *usecase.ValidationError
		if errors.As(err, &ve) {
			utils.ResponseBadRequest(w, "Validation failed", ve.Fields)
			return
		}
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
