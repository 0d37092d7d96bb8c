package dto

import "time"

// RegisterRequest entrada para registro (auth). El rol siempre es USER.
type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=30"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest cambios del propio perfil.
type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=30"`
}

// ChangeRoleRequest cambio de rol (admin).
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN AGENT REP USER"`
}

// ChangePasswordRequest cambio de contraseña del propio usuario.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,nefield=CurrentPassword"`
}

// CreateStaffRequest alta de un agente o representante (admin).
type CreateStaffRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=30"`
}

// UpdateStaffRequest cambios sobre un agente o representante; password vacío no se toca.
type UpdateStaffRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=30"`
}

// AddressRequest alta de una dirección del propio usuario.
type AddressRequest struct {
	LineOne string  `json:"lineOne" validate:"required,max=300"`
	LineTwo *string `json:"lineTwo" validate:"omitempty,max=300"`
	PinCode string  `json:"pinCode" validate:"required,max=20"`
	City    string  `json:"city" validate:"required,max=120"`
	Country string  `json:"country" validate:"required,max=120"`
}

// AddressResponse salida de una dirección.
type AddressResponse struct {
	ID        string    `json:"id"`
	LineOne   string    `json:"lineOne"`
	LineTwo   *string   `json:"lineTwo,omitempty"`
	PinCode   string    `json:"pinCode"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
