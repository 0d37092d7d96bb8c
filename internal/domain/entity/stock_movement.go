package entity

import "time"

// Tipos de movimiento del libro de stock.
const (
	MovementAssign     = "ASSIGN"      // central -> sucursal al asignar el producto
	MovementRemove     = "REMOVE"      // sucursal -> central al retirar el producto
	MovementTopUp      = "TOP_UP"      // central -> sucursal sobre una línea existente
	MovementReceipt    = "RECEIPT"     // central -> sucursal al recibir una solicitud
	MovementSale       = "SALE"        // salida de sucursal por venta
	MovementSaleReturn = "SALE_RETURN" // reingreso a sucursal por cancelación
	MovementRestock    = "RESTOCK"     // ingreso al inventario central
)

// StockMovement asiento del libro de stock. AdminDelta y BranchDelta son variaciones con signo;
// en traslados central -> sucursal se cumple AdminDelta == -BranchDelta.
type StockMovement struct {
	ID          string
	ReferenceID string // solicitud u orden que originó el movimiento (vacío si manual)
	ProductID   string
	BranchID    *string
	Kind        string
	AdminDelta  int
	BranchDelta int
	CreatedBy   string
	CreatedAt   time.Time
}
