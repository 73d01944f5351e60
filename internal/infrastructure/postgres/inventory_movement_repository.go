package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, product_id, kind, quantity, unit_price, order_id, created_at`

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, kind, quantity, unit_price, order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Kind, movement.Quantity,
		movement.UnitPrice, nullString(movement.OrderID), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *InventoryMovementRepo) GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM inventory_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory movement: %w", err)
	}
	return m, nil
}

// List lista movimientos, más recientes primero.
func (r *InventoryMovementRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.list(ctx,
		`SELECT `+movementColumns+` FROM inventory_movements ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListByProduct lista movimientos de un producto.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.list(ctx,
		`SELECT `+movementColumns+` FROM inventory_movements WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		productID, limit, offset)
}

// ListByOrder lista los consumes generados por un pedido.
func (r *InventoryMovementRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.InventoryMovement, error) {
	return r.list(ctx,
		`SELECT `+movementColumns+` FROM inventory_movements WHERE order_id = $1 ORDER BY created_at`,
		orderID)
}

// Delete borra el registro. El stock del producto no se ajusta.
func (r *InventoryMovementRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.MovementNotFound(id)
	}
	return nil
}

func (r *InventoryMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var orderID *string
	if err := row.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.UnitPrice, &orderID, &m.CreatedAt); err != nil {
		return nil, err
	}
	if orderID != nil {
		m.OrderID = *orderID
	}
	return &m, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
