package orders

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"codeberg.org/wcorrea/apierror/internal/errors"
)

// MemoryRepository implements Repository using in-memory storage.
// it mirrors the PostgreSQL constraints so both surface the same categories.
type MemoryRepository struct {
	mu         sync.RWMutex
	nextID     int64
	orders     map[int64]Order
	references map[string]int64
}

// creates a new in-memory order repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders:     make(map[int64]Order),
		references: make(map[string]int64),
	}
}

func (r *MemoryRepository) Create(_ context.Context, req CreateOrderRequest) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.references[req.Reference]; exists {
		return nil, errors.Integrity(fmt.Errorf(
			"failed to create order %s: duplicate key value violates unique constraint %q",
			req.Reference, "orders_reference_key",
		))
	}

	r.nextID++
	order := Order{
		ID:        r.nextID,
		Reference: req.Reference,
		Customer:  req.Customer,
		Quantity:  req.Quantity,
		Status:    StatusOpen,
		CreatedAt: time.Now(),
	}

	r.orders[order.ID] = order
	r.references[order.Reference] = order.ID

	return &order, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errors.EmptyResult(fmt.Errorf("failed to get order %d: no rows in result set", id))
	}

	return &order, nil
}

func (r *MemoryRepository) List(_ context.Context, limit, offset int) ([]Order, error) {
	if limit < 0 {
		return nil, errors.InvalidUsage(fmt.Errorf("failed to list orders: LIMIT must not be negative"))
	}

	if offset < 0 {
		return nil, errors.InvalidUsage(fmt.Errorf("failed to list orders: OFFSET must not be negative"))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, order)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })

	if offset >= len(list) {
		return []Order{}, nil
	}

	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.orders), nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id int64, status string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errors.EmptyResult(fmt.Errorf("failed to update order %d: no rows in result set", id))
	}

	order.Status = status
	r.orders[id] = order

	return &order, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return errors.EmptyResult(fmt.Errorf("failed to delete order %d: no rows in result set", id))
	}

	delete(r.orders, id)
	delete(r.references, order.Reference)

	return nil
}
