package entity

import "time"

// Address dirección de envío guardada por un usuario.
type Address struct {
	ID        string
	UserID    string
	LineOne   string
	LineTwo   *string
	PinCode   string
	City      string
	Country   string
	CreatedAt time.Time
}
