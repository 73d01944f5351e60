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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, order_id, amount, payment_type_id, payment_status_id, paid_at`

// PaymentRepo persistencia de pagos sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, order_id, amount, payment_type_id, payment_status_id, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.OrderID, p.Amount, p.PaymentTypeID, p.PaymentStatusID, p.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepo) List(ctx context.Context) ([]*entity.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY paid_at DESC`)
}

func (r *PaymentRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE order_id = $1 ORDER BY paid_at DESC`, orderID)
}

// Update reemplaza todos los campos del pago.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE payments SET order_id = $2, amount = $3, payment_type_id = $4, payment_status_id = $5, paid_at = $6
		WHERE id = $1`,
		p.ID, p.OrderID, p.Amount, p.PaymentTypeID, p.PaymentStatusID, p.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.PaymentNotFound(p.ID)
	}
	return nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.PaymentNotFound(id)
	}
	return nil
}

func (r *PaymentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	if err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.PaymentTypeID, &p.PaymentStatusID, &p.PaidAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// SeedPaymentCatalog inserta los catálogos de tipos y estados de pago (idempotente).
func SeedPaymentCatalog(ctx context.Context, q Querier) (int64, error) {
	var inserted int64
	for _, t := range entity.PaymentTypes() {
		cmd, err := q.Exec(ctx,
			`INSERT INTO payment_types (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, t.ID, t.Name)
		if err != nil {
			return inserted, fmt.Errorf("seed payment type %d: %w", t.ID, err)
		}
		inserted += cmd.RowsAffected()
	}
	for _, s := range entity.PaymentStatuses() {
		cmd, err := q.Exec(ctx,
			`INSERT INTO payment_statuses (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, s.ID, s.Name)
		if err != nil {
			return inserted, fmt.Errorf("seed payment status %d: %w", s.ID, err)
		}
		inserted += cmd.RowsAffected()
	}
	return inserted, nil
}
