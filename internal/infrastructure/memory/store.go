// Package memory adaptador de persistencia en memoria con semántica transaccional.
// Una transacción toma el lock de escritura del Store y trabaja sobre los mapas vivos;
// si fn falla (o ctx expira) se restaura la foto tomada al inicio.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Pedidos-api/internal/application/inventory"
	"github.com/jhoicas/Pedidos-api/internal/application/ordering"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ ordering.OrderTxRunner = (*TxRunner)(nil)

type record[T any] struct {
	val T
	seq uint64
}

type tables struct {
	products  map[string]record[entity.Product]
	movements map[string]record[entity.InventoryMovement]
	orders    map[string]record[entity.Order]
	payments  map[string]record[entity.Payment]
}

// Store almacén compartido por todos los repos en memoria.
type Store struct {
	mu  sync.RWMutex
	seq uint64
	t   tables
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{t: tables{
		products:  make(map[string]record[entity.Product]),
		movements: make(map[string]record[entity.InventoryMovement]),
		orders:    make(map[string]record[entity.Order]),
		payments:  make(map[string]record[entity.Payment]),
	}}
}

func (s *Store) next() uint64 {
	s.seq++
	return s.seq
}

// snapshot copia todas las tablas. Requiere el lock de escritura.
func (s *Store) snapshot() tables {
	return tables{
		products:  copyMap(s.t.products),
		movements: copyMap(s.t.movements),
		orders:    copyMap(s.t.orders),
		payments:  copyMap(s.t.payments),
	}
}

// Los valores guardados nunca se mutan en sitio (las órdenes se clonan al entrar y salir),
// así que una copia superficial del mapa basta.
func copyMap[T any](m map[string]record[T]) map[string]record[T] {
	out := make(map[string]record[T], len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// view liga los repos al Store. inTx indica que el lock ya lo tiene el TxRunner.
type view struct {
	s    *Store
	inTx bool
}

func (v view) rlock() func() {
	if v.inTx {
		return func() {}
	}
	v.s.mu.RLock()
	return v.s.mu.RUnlock
}

func (v view) wlock() func() {
	if v.inTx {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

// TxRunner serializa transacciones sobre el Store con rollback por snapshot.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos de inventario atados a la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(v view) error {
		return fn(&MovementRepo{v: v}, &ProductRepo{v: v})
	})
}

// RunOrder ejecuta fn con repos de inventario y pedidos atados a la transacción.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.inTx(ctx, func(v view) error {
		return fn(&MovementRepo{v: v}, &ProductRepo{v: v}, &OrderRepo{v: v})
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(v view) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	seq := r.s.seq
	err := fn(view{s: r.s, inTx: true})
	if err == nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("commit transaction: %w", ctxErr)
		}
	}
	if err != nil {
		r.s.t = snap
		r.s.seq = seq
		return err
	}
	return nil
}

// sorted devuelve los valores que pasan keep, más recientes primero (seq descendente).
func sorted[T any](m map[string]record[T], keep func(T) bool) []T {
	recs := make([]record[T], 0, len(m))
	for _, r := range m {
		if keep == nil || keep(r.val) {
			recs = append(recs, r)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })
	out := make([]T, len(recs))
	for i, r := range recs {
		out[i] = r.val
	}
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
