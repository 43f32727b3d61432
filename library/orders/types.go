package orders

import (
	"context"
	"time"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// represents a customer order
type Order struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	Customer  string    `json:"customer"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// contains data for placing an order
type CreateOrderRequest struct {
	Reference string `json:"reference" binding:"required,max=64"`
	Customer  string `json:"customer" binding:"required,email"`
	Quantity  int    `json:"quantity" binding:"gt=0,max=1000"`
}

// persistence for orders; implementations return driver errors (or errors tagged
// with the matching category) so the error boundary can classify them
type Repository interface {
	Create(ctx context.Context, req CreateOrderRequest) (*Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, limit, offset int) ([]Order, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Order, error)
	Delete(ctx context.Context, id int64) error
}
