package entity

import "time"

// Branch representa una sucursal. Un agente atiende como máximo una sucursal.
type Branch struct {
	ID          string
	Name        string
	PhoneNumber string
	Address     string
	AgentID     *string
	SalesRepID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAgent indica si userID es el agente asignado a la sucursal.
func (b *Branch) IsAgent(userID string) bool {
	return b != nil && b.AgentID != nil && *b.AgentID == userID
}
