package ordering

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// ReceiptUseCase genera el comprobante PDF de un pedido a partir de sus líneas snapshot.
type ReceiptUseCase struct {
	orders    *OrderUseCase
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orders *OrderUseCase, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, generator: generator}
}

// DownloadReceipt verifica acceso al pedido y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrOrderNotFound    si el pedido no existe.
//   - domain.ErrForbidden        si el pedido no pertenece al cliente (y no es admin).
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, caller Caller, orderID string) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orders.load(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if !caller.IsAdmin && order.CustomerID != caller.ID {
		return nil, "", domain.ErrForbidden
	}
	pdfBytes, err = uc.generator.GenerateOrderReceipt(ctx, order)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pedido_%s.pdf", order.ID), nil
}
