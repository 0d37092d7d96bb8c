// Package policy centraliza qué rol puede ejecutar cada operación y las reglas de
// pertenencia (agente de la sucursal, creador del documento) que la complementan.
package policy

import (
	"fmt"

	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
)

// Actor identidad autenticada que ejecuta una operación.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin indica si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// Capability operación protegida.
type Capability string

const (
	CreateStockRequest  Capability = "stock_request.create"
	UpdateStockRequest  Capability = "stock_request.update"
	DecideStockRequest  Capability = "stock_request.decide" // aprobar o rechazar
	DeliverStockRequest Capability = "stock_request.deliver"
	ReceiveStockRequest Capability = "stock_request.receive"
	DeleteStockRequest  Capability = "stock_request.delete"
	ViewStockRequest    Capability = "stock_request.view"
	ListStockRequests   Capability = "stock_request.list_all"
	ListBranchRequests  Capability = "stock_request.list_branch"

	ManageBranchStock Capability = "ledger.manage"
	ViewBranchStock   Capability = "ledger.view"

	ManageBranches  Capability = "branch.manage"
	ManageProducts  Capability = "product.manage"
	ManageUsers     Capability = "user.manage"
	ManageMasonBass Capability = "mason_bass.manage"

	ChangeOrderStatus Capability = "order.change_status"
	CancelOrder       Capability = "order.cancel"
	ViewAllOrders     Capability = "order.view_all"
	CreateAgentOrder  Capability = "order.create_in_store"

	LogCalls  Capability = "call_event.manage"
	LogVisits Capability = "visit.manage"
)

var anyRole = []string{entity.RoleAdmin, entity.RoleAgent, entity.RoleRep, entity.RoleUser}

// table roles permitidos por operación.
var table = map[Capability][]string{
	CreateStockRequest:  {entity.RoleAgent},
	UpdateStockRequest:  {entity.RoleAgent},
	DecideStockRequest:  {entity.RoleAdmin},
	DeliverStockRequest: {entity.RoleAdmin},
	ReceiveStockRequest: {entity.RoleAgent},
	DeleteStockRequest:  {entity.RoleAdmin, entity.RoleAgent},
	ViewStockRequest:    {entity.RoleAdmin, entity.RoleAgent},
	ListStockRequests:   {entity.RoleAdmin},
	ListBranchRequests:  {entity.RoleAgent},

	ManageBranchStock: {entity.RoleAdmin},
	ViewBranchStock:   {entity.RoleAdmin, entity.RoleAgent},

	ManageBranches:  {entity.RoleAdmin},
	ManageProducts:  {entity.RoleAdmin},
	ManageUsers:     {entity.RoleAdmin},
	ManageMasonBass: {entity.RoleAdmin, entity.RoleAgent},

	ChangeOrderStatus: {entity.RoleAdmin},
	CancelOrder:       anyRole,
	ViewAllOrders:     {entity.RoleAdmin},
	CreateAgentOrder:  {entity.RoleAgent},

	LogCalls:  {entity.RoleAdmin, entity.RoleAgent, entity.RoleRep},
	LogVisits: {entity.RoleAdmin, entity.RoleRep},
}

// Rule predicado de pertenencia evaluado después del rol.
type Rule func(Actor) bool

// Check verifica que el rol del actor esté habilitado para c y que se cumplan todas las reglas.
// Devuelve un error que envuelve domain.ErrUnauthorized en caso contrario.
func Check(actor Actor, c Capability, rules ...Rule) error {
	if actor.UserID == "" || !allowed(c, actor.Role) {
		return fmt.Errorf("%s: rol %q: %w", c, actor.Role, domain.ErrUnauthorized)
	}
	for _, rule := range rules {
		if !rule(actor) {
			return fmt.Errorf("%s: %w", c, domain.ErrUnauthorized)
		}
	}
	return nil
}

// Roles devuelve los roles habilitados para c (para armar middlewares de ruta).
func Roles(c Capability) []string {
	return append([]string(nil), table[c]...)
}

func allowed(c Capability, role string) bool {
	for _, r := range table[c] {
		if r == role {
			return true
		}
	}
	return false
}

// BranchAgent exige que el actor sea el agente asignado a la sucursal.
func BranchAgent(branch *entity.Branch) Rule {
	return func(a Actor) bool { return branch.IsAgent(a.UserID) }
}

// Owner exige que el actor sea userID.
func Owner(userID string) Rule {
	return func(a Actor) bool { return userID != "" && a.UserID == userID }
}

// Admin se cumple para administradores.
func Admin() Rule {
	return func(a Actor) bool { return a.IsAdmin() }
}

// AnyOf se cumple si al menos una regla se cumple.
func AnyOf(rules ...Rule) Rule {
	return func(a Actor) bool {
		for _, r := range rules {
			if r(a) {
				return true
			}
		}
		return false
	}
}
