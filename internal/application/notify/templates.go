package notify

import (
	"fmt"
	"strings"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// StockRequestEvent arma el evento de una transición de solicitud.
func StockRequestEvent(eventType string, req *entity.StockRequest) Event {
	var b strings.Builder
	switch eventType {
	case EventStockRequestCreated:
		b.WriteString("Nueva solicitud de stock\n\n")
	case EventStockRequestApproved:
		b.WriteString("Solicitud de stock aprobada\n\n")
	case EventStockRequestRejected:
		b.WriteString("Solicitud de stock rechazada\n\n")
	case EventStockRequestDelivered:
		b.WriteString("Solicitud de stock despachada\n\n")
	case EventStockRequestCompleted:
		b.WriteString("Solicitud de stock recibida\n\n")
	default:
		b.WriteString("Solicitud de stock actualizada\n\n")
	}
	fmt.Fprintf(&b, "Solicitud: %s\nSucursal: %s\nEstado: %s\n", req.ID, req.BranchID, req.Status)
	if len(req.Items) > 0 {
		b.WriteString("Ítems:\n")
		for _, it := range req.Items {
			fmt.Fprintf(&b, "- %s: solicitado %d, aprobado %d, recibido %d\n",
				it.ProductID, it.RequestedQuantity, it.ApprovedQuantity, it.ReceivedQuantity)
		}
	}
	if req.Note != "" {
		fmt.Fprintf(&b, "Nota: %s\n", req.Note)
	}
	return Event{
		Type:    eventType,
		Subject: req.ID,
		Message: b.String(),
		Attributes: map[string]string{
			"branch_id": req.BranchID,
			"status":    req.Status,
		},
	}
}

// OrderEvent arma el evento de una orden.
func OrderEvent(eventType string, order *entity.Order) Event {
	title := "Nueva orden"
	if eventType == EventOrderStatusChanged {
		title = "Orden actualizada"
	}
	msg := fmt.Sprintf("%s\n\nOrden: %s\nTotal: %s\nEstado: %s\nSucursal: %s\nCanal: %s",
		title, order.ID, order.NetAmount.StringFixed(2), order.Status, order.BranchID, order.Channel)
	return Event{
		Type:    eventType,
		Subject: order.ID,
		Message: msg,
		Attributes: map[string]string{
			"branch_id": order.BranchID,
			"status":    order.Status,
		},
	}
}
