package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
)

func ptr(s string) *string { return &s }

func TestCheck_RolYPertenencia(t *testing.T) {
	b1 := &entity.Branch{ID: "b1", AgentID: ptr("agent-1")}
	admin := Actor{UserID: "admin-1", Role: entity.RoleAdmin}
	owner := Actor{UserID: "agent-1", Role: entity.RoleAgent}
	other := Actor{UserID: "agent-2", Role: entity.RoleAgent}

	cases := []struct {
		name  string
		actor Actor
		cap   Capability
		rules []Rule
		ok    bool
	}{
		{"agente de la sucursal crea", owner, CreateStockRequest, []Rule{BranchAgent(b1)}, true},
		{"agente ajeno no crea", other, CreateStockRequest, []Rule{BranchAgent(b1)}, false},
		{"admin no crea solicitudes", admin, CreateStockRequest, nil, false},
		{"admin aprueba", admin, DecideStockRequest, nil, true},
		{"agente no aprueba", owner, DecideStockRequest, nil, false},
		{"admin borra ajena", admin, DeleteStockRequest, []Rule{AnyOf(Admin(), Owner("agent-1"))}, true},
		{"creador borra", owner, DeleteStockRequest, []Rule{AnyOf(Admin(), Owner("agent-1"))}, true},
		{"otro agente no borra", other, DeleteStockRequest, []Rule{AnyOf(Admin(), Owner("agent-1"))}, false},
		{"actor vacío", Actor{Role: entity.RoleAdmin}, DecideStockRequest, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.actor, tc.cap, tc.rules...)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, domain.ErrUnauthorized), "se esperaba ErrUnauthorized, got %v", err)
		})
	}
}

func TestBranchAgent_SucursalSinAgente(t *testing.T) {
	rule := BranchAgent(&entity.Branch{ID: "b1"})
	assert.False(t, rule(Actor{UserID: "agent-1", Role: entity.RoleAgent}))
}

func TestRoles_DevuelveCopia(t *testing.T) {
	r := Roles(DecideStockRequest)
	r[0] = "USER"
	assert.Equal(t, []string{entity.RoleAdmin}, Roles(DecideStockRequest))
}
