// Package ordering contiene las reglas puras del agregado Pedido: máquina de estados y totales.
package ordering

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

var upper = cases.Upper(language.Und)

// Códigos aceptados en ChangeStatus, incluidos los heredados en español.
var statusAliases = map[string]entity.OrderStatus{
	"PAID":      entity.OrderStatusPaid,
	"APPROVED":  entity.OrderStatusApproved,
	"EN_ROUTE":  entity.OrderStatusEnRoute,
	"ENROUTE":   entity.OrderStatusEnRoute,
	"DELIVERED": entity.OrderStatusDelivered,
	"REJECTED":  entity.OrderStatusRejected,
	"PAGADO":    entity.OrderStatusPaid,
	"APROBADO":  entity.OrderStatusApproved,
	"EN_CAMINO": entity.OrderStatusEnRoute,
	"ENTREGADO": entity.OrderStatusDelivered,
	"RECHAZADO": entity.OrderStatusRejected,
}

// ParseAdminTarget normaliza el estado pedido por un admin y lo valida contra la allow-list
// {Paid, Approved, EnRoute, Delivered, Rejected}. PENDING_PAYMENT no es un destino válido.
func ParseAdminTarget(raw string) (entity.OrderStatus, error) {
	code := upper.String(strings.TrimSpace(raw))
	code = strings.NewReplacer(" ", "_", "-", "_").Replace(code)
	s, ok := statusAliases[code]
	if !ok {
		return "", domain.ErrInvalidStatus
	}
	return s, nil
}

// CanMarkPaid valida la transición PendingPayment -> Paid del cliente.
func CanMarkPaid(current entity.OrderStatus) error {
	if current != entity.OrderStatusPendingPayment {
		return domain.ErrIllegalTransition
	}
	return nil
}
