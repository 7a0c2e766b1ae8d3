package adaptor

import (
	"net/http"

	"clothing-shop/internal/dto/request"
	"clothing-shop/internal/usecase"
	"clothing-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// GetProducts handles GET /api/products
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetProducts(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get products")
		return
	}

	utils.ResponseSuccess(w, products)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.ProductRequest

	if err := decodeStrict(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", err.Error())
		return
	}

	if err := h.service.CreateProduct(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product added")
}

// UpdateProduct handles PUT /api/products/{product_name}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productName := chi.URLParam(r, "product_name")

	var req request.ProductUpdateRequest
	if err := decodeStrict(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", err.Error())
		return
	}

	if err := h.service.UpdateProduct(r.Context(), productName, &req); err != nil {
		handleServiceError(w, h.log, err, "update product")
		return
	}

	utils.ResponseMessage(w, "Product updated")
}

// DeleteProduct handles DELETE /api/products/{product_name}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productName := chi.URLParam(r, "product_name")

	if err := h.service.DeleteProduct(r.Context(), productName); err != nil {
		handleServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseMessage(w, "Product deleted")
}
