package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/LucasSiw/apetrecho-core/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders
		(id, user_id, items, address, payment, subtotal, discount, shipping,
		 total, coupon_code, status, created_at, estimated_delivery)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	deleteOrderSQL = `DELETE FROM orders WHERE id = $1`

	getOrderSQL = `SELECT id, user_id, items, address, payment, subtotal,
		discount, shipping, total, coupon_code, status, created_at,
		estimated_delivery
		FROM orders WHERE id = $1`

	listOrdersByUserSQL = `SELECT id, user_id, items, address, payment,
		subtotal, discount, shipping, total, coupon_code, status, created_at,
		estimated_delivery
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	updateOrderStatusSQL = `UPDATE orders SET status = $3
		WHERE id = $1 AND status = $2`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. The item
// snapshot, address, and payment selection are stored as JSONB.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}
	address, err := json.Marshal(o.Address)
	if err != nil {
		return fmt.Errorf("marshaling order address: %w", err)
	}
	payment, err := json.Marshal(o.Payment)
	if err != nil {
		return fmt.Errorf("marshaling order payment: %w", err)
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.UserID, items, address, payment,
		o.Subtotal, o.Discount, o.Shipping, o.Total,
		o.CouponCode, string(o.Status), o.CreatedAt, o.EstimatedDelivery,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// Delete removes an order by ID. Deleting an absent order is a no-op.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, deleteOrderSQL, id); err != nil {
		return fmt.Errorf("deleting order %q: %w", id, err)
	}
	return nil
}

// Get returns the order with the given ID, or order.ErrNotFound.
func (r *OrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}
	return &o, nil
}

// ListByUser returns the user's orders, most recently created first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders for user %q: %w", userID, err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// UpdateStatus moves an order from the expected current status to the new
// one. Returns order.ErrNotFound when no row holds the expected status, so
// concurrent advances cannot double-apply.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to order.Status) error {
	tag, err := r.pool.Exec(ctx, updateOrderStatusSQL, id, string(from), string(to))
	if err != nil {
		return fmt.Errorf("updating status of order %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o        order.Order
		items    []byte
		address  []byte
		payment  []byte
		subtotal decimal.Decimal
		discount decimal.Decimal
		shipping decimal.Decimal
		total    decimal.Decimal
		status   string
		created  time.Time
		eta      time.Time
	)
	err := row.Scan(
		&o.ID, &o.UserID, &items, &address, &payment,
		&subtotal, &discount, &shipping, &total,
		&o.CouponCode, &status, &created, &eta,
	)
	if err != nil {
		return order.Order{}, err
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return order.Order{}, fmt.Errorf("unmarshaling items of order %q: %w", o.ID, err)
	}
	if err := json.Unmarshal(address, &o.Address); err != nil {
		return order.Order{}, fmt.Errorf("unmarshaling address of order %q: %w", o.ID, err)
	}
	if err := json.Unmarshal(payment, &o.Payment); err != nil {
		return order.Order{}, fmt.Errorf("unmarshaling payment of order %q: %w", o.ID, err)
	}

	o.Subtotal = subtotal
	o.Discount = discount
	o.Shipping = shipping
	o.Total = total
	o.Status = order.Status(status)
	o.CreatedAt = created
	o.EstimatedDelivery = eta
	return o, nil
}
