package orders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// implements Repository using PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// creates a new PostgreSQL order repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// creates the required tables if they don't exist
func (r *PostgresRepository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, queryCreateTable)
	return err
}

// inserts an order; a reused reference violates orders_reference_key
func (r *PostgresRepository) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, queryCreate, req.Reference, req.Customer, req.Quantity))
	if err != nil {
		return nil, fmt.Errorf("failed to create order %s: %w", req.Reference, err)
	}

	return order, nil
}

// finds an order by ID; a missing order yields pgx.ErrNoRows
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, queryGet, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	return order, nil
}

// returns the most recent orders; negative bounds are rejected by the database
func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]Order, error) {
	rows, err := r.db.Query(ctx, queryList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Order, error) {
		order, err := scanOrder(row)
		if err != nil {
			return Order{}, err
		}

		return *order, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return list, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCount).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return total, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status string) (*Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, queryUpdateStatus, status, id))
	if err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", id, err)
	}

	return order, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, queryDelete, id)
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete order %d: %w", id, pgx.ErrNoRows)
	}

	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var order Order

	err := row.Scan(
		&order.ID,
		&order.Reference,
		&order.Customer,
		&order.Quantity,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &order, nil
}
