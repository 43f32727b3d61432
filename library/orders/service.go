package orders

import (
	"context"
	"fmt"

	"codeberg.org/wcorrea/apierror/internal/errors"
)

// business rule keys
const (
	KeyOrderNotFound     = "ORDER_NOT_FOUND"
	KeyOrderClosed       = "ORDER_CLOSED"
	KeyOrderNotDeletable = "ORDER_NOT_DELETABLE"
)

// applies order business rules on top of a repository
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	return s.repo.Create(ctx, req)
}

// a missing order surfaces as a plain empty read (404 with the generic message)
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.Get(ctx, id)
}

// returns a page of orders and the total number of orders
func (s *Service) List(ctx context.Context, limit, offset int) ([]Order, int, error) {
	list, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// closes an open order
func (s *Service) Close(ctx context.Context, id int64) (*Order, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == StatusClosed {
		return nil, errors.Business(KeyOrderClosed, "Order already closed")
	}

	return s.repo.UpdateStatus(ctx, id, StatusClosed)
}

// deletes an order that has not been closed yet
func (s *Service) Delete(ctx context.Context, id int64) error {
	order, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if order.Status == StatusClosed {
		return errors.Business(KeyOrderNotDeletable, "Closed orders cannot be deleted")
	}

	return s.repo.Delete(ctx, id)
}

// loads an order the caller named explicitly, reporting a miss as a domain error
func (s *Service) find(ctx context.Context, id int64) (*Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errors.CategoryResourceNotFound) {
			return nil, errors.NotFound(KeyOrderNotFound, fmt.Sprintf("Order %d does not exist", id))
		}

		return nil, err
	}

	return order, nil
}
