package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "ADMIN"
	RoleAgent = "AGENT" // atiende una única sucursal
	RoleRep   = "REP"   // representante comercial de campo
	RoleUser  = "USER"  // cliente final
)

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAgent, RoleRep, RoleUser:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	PhoneNumber  string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
