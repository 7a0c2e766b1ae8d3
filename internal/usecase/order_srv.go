package usecase

import (
	"context"
	"fmt"

	"clothing-shop/internal/data/entity"
	"clothing-shop/internal/data/repository"

	"go.uber.org/zap"
)

type OrderService interface {
	GetOrders(ctx context.Context) ([]entity.Order, error)
}

type orderService struct {
	orders repository.Collection[entity.Order]
	log    *zap.Logger
}

func NewOrderService(orders repository.Collection[entity.Order], log *zap.Logger) OrderService {
	return &orderService{
		orders: orders,
		log:    log.With(zap.String("service", "order")),
	}
}

func (s *orderService) GetOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	return orders, nil
}
