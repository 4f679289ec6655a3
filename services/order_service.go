package services

import (
	"context"
	"strings"

	"orders-api/models"
	"orders-api/repositories"
)

type OrderService struct {
	orderRepo repositories.OrderRepository
}

func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *OrderService) SearchByStatus(ctx context.Context, status string) ([]models.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, requiredParam("status")
	}
	return s.orderRepo.FindByStatus(ctx, status)
}

func (s *OrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	order := &models.Order{
		Email:  req.Email,
		Name:   req.Name,
		Status: req.Status,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id string, req models.UpdateOrderRequest) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		order.Email = req.Email
	}
	if req.Name != "" {
		order.Name = req.Name
	}
	if req.Status != "" {
		order.Status = req.Status
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	return s.orderRepo.Delete(ctx, id)
}
