package repositories

import (
	"context"
	"sync"
	"time"

	"orders-api/models"

	"github.com/google/uuid"
)

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	ids    []string
	orders map[string]models.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]models.Order)}
}

func (r *MemoryOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.filter(ctx, func(models.Order) bool { return true })
}

func (r *MemoryOrderRepository) FindByStatus(ctx context.Context, status string) ([]models.Order, error) {
	return r.filter(ctx, func(o models.Order) bool { return o.Status == status })
}

func (r *MemoryOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (r *MemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	order.ID = uuid.NewString()
	order.CreatedAt = now
	order.UpdatedAt = now

	r.ids = append(r.ids, order.ID)
	r.orders[order.ID] = *order
	return nil
}

func (r *MemoryOrderRepository) Update(ctx context.Context, order *models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[order.ID]
	if !ok {
		return ErrNotFound
	}

	order.CreatedAt = existing.CreatedAt
	order.UpdatedAt = time.Now().UTC()
	r.orders[order.ID] = *order
	return nil
}

func (r *MemoryOrderRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	r.ids = removeID(r.ids, id)
	return nil
}

func (r *MemoryOrderRepository) filter(ctx context.Context, keep func(models.Order) bool) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []models.Order{}
	for _, id := range r.ids {
		if order := r.orders[id]; keep(order) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}
