package dto

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// ToOrderResponse mapea el agregado Pedido a su salida.
func ToOrderResponse(o *entity.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal,
		})
	}
	return OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		Status:       string(o.Status),
		Total:        o.Total,
		ApproverID:   o.ApproverID,
		ApprovedAt:   o.ApprovedAt,
		PaymentTxRef: o.PaymentTxRef,
		CreatedAt:    o.CreatedAt,
		Lines:        lines,
	}
}

// ToMovementResponse mapea un movimiento del ledger.
func ToMovementResponse(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Kind,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Total:     m.Total(),
		OrderID:   m.OrderID,
		CreatedAt: m.CreatedAt,
	}
}

// ToProductResponse mapea un producto.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
