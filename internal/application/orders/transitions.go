package orders

import "github.com/masonbass/retail-api/internal/domain/entity"

// transitions estados destino permitidos desde cada estado. DELIVERED y CANCELLED son finales.
var transitions = map[string][]string{
	entity.OrderPending:        {entity.OrderAccepted, entity.OrderCancelled},
	entity.OrderAccepted:       {entity.OrderOutForDelivery, entity.OrderCancelled},
	entity.OrderOutForDelivery: {entity.OrderDelivered},
	entity.OrderPaymentDone:    {entity.OrderDelivered},
	entity.OrderDelivered:      {},
	entity.OrderCancelled:      {},
}

// CanTransition indica si una orden puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidStatus indica si status es un estado de orden conocido.
func ValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// returnsStock indica si pasar a status devuelve las unidades a la sucursal.
func returnsStock(status string) bool { return status == entity.OrderCancelled }
