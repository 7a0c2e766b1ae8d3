package usecase

import (
	"context"
	"errors"
	"fmt"

	"clothing-shop/internal/data/entity"
	"clothing-shop/internal/data/repository"
	"clothing-shop/internal/dto/request"

	"go.uber.org/zap"
)

type ProductService interface {
	GetProducts(ctx context.Context) ([]entity.Product, error)
	CreateProduct(ctx context.Context, req *request.ProductRequest) error
	// UpdateProduct and DeleteProduct succeed silently when no product has that name.
	UpdateProduct(ctx context.Context, productName string, req *request.ProductUpdateRequest) error
	DeleteProduct(ctx context.Context, productName string) error
}

type productService struct {
	products repository.Collection[entity.Product]
	log      *zap.Logger
}

func NewProductService(products repository.Collection[entity.Product], log *zap.Logger) ProductService {
	return &productService{
		products: products,
		log:      log.With(zap.String("service", "product")),
	}
}

func (s *productService) GetProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	return products, nil
}

func (s *productService) CreateProduct(ctx context.Context, req *request.ProductRequest) error {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create product validation failed", zap.Error(err))
		return err
	}

	if err := s.products.Insert(ctx, req.ToEntity()); err != nil {
		return fmt.Errorf("create product %d: %w", req.ID, err)
	}

	s.log.Info("Product created",
		zap.Int("id", req.ID),
		zap.String("product_name", req.ProductName))
	return nil
}

func (s *productService) UpdateProduct(ctx context.Context, productName string, req *request.ProductUpdateRequest) error {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Update product validation failed", zap.Error(err))
		return err
	}

	fields := req.ToFields()
	if len(fields) == 0 {
		return nil
	}

	err := s.products.Update(ctx, repository.Filter{"product_name": productName}, fields)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Debug("Update matched no product", zap.String("product_name", productName))
		return nil
	}
	if err != nil {
		return fmt.Errorf("update product %q: %w", productName, err)
	}

	s.log.Info("Product updated", zap.String("product_name", productName))
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, productName string) error {
	err := s.products.Delete(ctx, repository.Filter{"product_name": productName})
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Debug("Delete matched no product", zap.String("product_name", productName))
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete product %q: %w", productName, err)
	}

	return nil
}
