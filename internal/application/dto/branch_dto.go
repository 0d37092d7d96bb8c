package dto

import "time"

// CreateBranchRequest entrada para crear una sucursal.
type CreateBranchRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=30"`
	Address     string `json:"address" validate:"omitempty,max=500"`
}

// UpdateBranchRequest actualización parcial.
type UpdateBranchRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=30"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

// AssignUserRequest asigna un agente o representante a la sucursal.
type AssignUserRequest struct {
	BranchID string `json:"branchId" validate:"required,uuid"`
	UserID   string `json:"userId" validate:"required,uuid"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	PhoneNumber string        `json:"phoneNumber,omitempty"`
	Address     string        `json:"address,omitempty"`
	AgentID     *string       `json:"agentId"`
	SalesRepID  *string       `json:"salesRepId"`
	Agent       *UserResponse `json:"agent,omitempty"`
	SalesRep    *UserResponse `json:"salesRep,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
