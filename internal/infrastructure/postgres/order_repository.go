package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, customer_id, status, total, approver_id, approved_at, payment_tx_ref, created_at`

// OrderRepo persistencia de pedidos (orders + order_lines) sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera y todas las líneas. Usar dentro de una tx para atomicidad.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, customer_id, status, total, approver_id, approved_at, payment_tx_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID, order.CustomerID, string(order.Status), order.Total,
		nullString(order.ApproverID), order.ApprovedAt, nullString(order.PaymentTxRef), order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i, l := range order.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_lines (id, order_id, position, product_id, product_name, unit_price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, order.ID, i, l.ProductID, l.ProductName, l.UnitPrice, l.Quantity, l.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.attachLines(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// GetForUpdate bloquea la cabecera del pedido (SELECT ... FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.OrderNotFound(id)
		}
		return nil, fmt.Errorf("lock order: %w", err)
	}
	return o, nil
}

// UpdateStatus persiste los campos mutables de la máquina de estados.
func (r *OrderRepo) UpdateStatus(ctx context.Context, order *entity.Order) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $2, approver_id = $3, approved_at = $4, payment_tx_ref = $5 WHERE id = $1`,
		order.ID, string(order.Status), nullString(order.ApproverID), order.ApprovedAt, nullString(order.PaymentTxRef),
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.OrderNotFound(order.ID)
	}
	return nil
}

// ListByCustomer lista los pedidos de un cliente, más recientes primero.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
}

// ListPending lista pedidos no terminales, más recientes primero.
func (r *OrderRepo) ListPending(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status NOT IN ($1, $2) ORDER BY created_at DESC`,
		string(entity.OrderStatusDelivered), string(entity.OrderStatusRejected))
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var orders []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachLines carga las líneas de todos los pedidos en una sola consulta.
func (r *OrderRepo) attachLines(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, unit_price, quantity, subtotal
		FROM order_lines WHERE order_id = ANY($1) ORDER BY order_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.UnitPrice, &l.Quantity, &l.Subtotal); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		if o := byID[l.OrderID]; o != nil {
			o.Lines = append(o.Lines, &l)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	var approverID, txRef *string
	if err := row.Scan(&o.ID, &o.CustomerID, &status, &o.Total, &approverID, &o.ApprovedAt, &txRef, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	if approverID != nil {
		o.ApproverID = *approverID
	}
	if txRef != nil {
		o.PaymentTxRef = *txRef
	}
	return &o, nil
}
