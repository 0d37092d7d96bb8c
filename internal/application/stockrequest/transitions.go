package stockrequest

import "github.com/masonbass/retail-api/internal/domain/entity"

// transitions estados destino permitidos desde cada estado. REJECTED y COMPLETED son terminales.
var transitions = map[string][]string{
	entity.StockRequestPending:   {entity.StockRequestApproved, entity.StockRequestRejected},
	entity.StockRequestApproved:  {entity.StockRequestDelivered},
	entity.StockRequestDelivered: {entity.StockRequestCompleted},
	entity.StockRequestRejected:  {},
	entity.StockRequestCompleted: {},
}

// CanTransition indica si from -> to es una transición válida.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsDeletable una solicitud solo se borra si no está en tránsito (APPROVED o DELIVERED).
func IsDeletable(status string) bool {
	switch status {
	case entity.StockRequestPending, entity.StockRequestCompleted, entity.StockRequestRejected:
		return true
	}
	return false
}

// ValidStatus indica si status es un estado conocido (para filtros).
func ValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}
