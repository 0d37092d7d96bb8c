package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/inventory"
	"github.com/masonbass/retail-api/internal/application/usecase"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

// BranchHandler sucursales, asignación de personal y stock por sucursal.
type BranchHandler struct {
	uc     *usecase.BranchUseCase
	ledger *inventory.LedgerUseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(uc *usecase.BranchUseCase, ledger *inventory.LedgerUseCase) *BranchHandler {
	return &BranchHandler{uc: uc, ledger: ledger}
}

// Create godoc
// @Summary      Crear sucursal
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBranchRequest  true  "Datos de la sucursal"
// @Success      201   {object}  dto.BranchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/branch [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar sucursales
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}   dto.BranchResponse
// @Router       /api/branch [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener sucursal con agente y representante
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        branchId  path  string  true  "ID de la sucursal"
// @Success      200       {object}  dto.BranchResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/branch/{branchId} [get]
func (h *BranchHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "branchId")
	if !ok {
		return invalidID(c, "branchId")
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar sucursal
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        branchId  path  string                   true  "ID de la sucursal"
// @Param        body      body  dto.UpdateBranchRequest  true  "Campos a cambiar"
// @Success      200       {object}  dto.BranchResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/branch/{branchId} [put]
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "branchId")
	if !ok {
		return invalidID(c, "branchId")
	}
	var in dto.UpdateBranchRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar sucursal
// @Tags         branches
// @Security     Bearer
// @Param        branchId  path  string  true  "ID de la sucursal"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/branch/{branchId} [delete]
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "branchId")
	if !ok {
		return invalidID(c, "branchId")
	}
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignAgent godoc
// @Summary      Asignar agente a la sucursal
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignUserRequest  true  "Sucursal y agente"
// @Success      200   {object}  dto.BranchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/branch/assign-agent [post]
func (h *BranchHandler) AssignAgent(c *fiber.Ctx) error {
	var in dto.AssignUserRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AssignAgent(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveAgent godoc
// @Summary      Quitar el agente de la sucursal
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        branchId  path  string  true  "ID de la sucursal"
// @Success      200       {object}  dto.BranchResponse
// @Failure      409       {object}  dto.ErrorResponse
// @Router       /api/branch/{branchId}/agent [delete]
func (h *BranchHandler) RemoveAgent(c *fiber.Ctx) error {
	id, ok := pathID(c, "branchId")
	if !ok {
		return invalidID(c, "branchId")
	}
	out, err := h.uc.RemoveAgent(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignRep godoc
// @Summary      Asignar representante de ventas
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignUserRequest  true  "Sucursal y representante"
// @Success      200   {object}  dto.BranchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/branch/assign-rep [post]
func (h *BranchHandler) AssignRep(c *fiber.Ctx) error {
	var in dto.AssignUserRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AssignRep(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveRep godoc
// @Summary      Quitar el representante de la sucursal
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        branchId  path  string  true  "ID de la sucursal"
// @Success      200       {object}  dto.BranchResponse
// @Router       /api/branch/{branchId}/rep [delete]
func (h *BranchHandler) RemoveRep(c *fiber.Ctx) error {
	id, ok := pathID(c, "branchId")
	if !ok {
		return invalidID(c, "branchId")
	}
	out, err := h.uc.RemoveRep(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignStock godoc
// @Summary      Asignar producto a la sucursal
// @Description  Mueve unidades del depósito central a una línea nueva de la sucursal.
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BranchStockRequest  true  "Sucursal, producto y cantidad"
// @Success      201   {object}  dto.BranchProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/branch/stock [post]
func (h *BranchHandler) AssignStock(c *fiber.Ctx) error {
	var in dto.BranchStockRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.ledger.AssignToBranch(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// TopUpStock godoc
// @Summary      Recargar stock de un producto ya asignado
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BranchStockRequest  true  "Sucursal, producto y cantidad"
// @Success      200   {object}  dto.BranchProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/branch/stock [put]
func (h *BranchHandler) TopUpStock(c *fiber.Ctx) error {
	var in dto.BranchStockRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.ledger.TopUpBranch(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveStock godoc
// @Summary      Retirar producto de la sucursal
// @Description  El saldo de la sucursal vuelve al depósito central.
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RemoveBranchStockRequest  true  "Sucursal y producto"
// @Success      200   {object}  map[string]int
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/branch/stock [delete]
func (h *BranchHandler) RemoveStock(c *fiber.Ctx) error {
	var in dto.RemoveBranchStockRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	returned, err := h.ledger.RemoveFromBranch(c.UserContext(), actorFrom(c), in.BranchID, in.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"returned": returned})
}

// ListProducts godoc
// @Summary      Productos asignados a la sucursal
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        branchId  path  string  true  "ID de la sucursal"
// @Success      200       {array}   dto.BranchProductResponse
// @Router       /api/branch/{branchId}/products [get]
func (h *BranchHandler) ListProducts(c *fiber.Ctx) error {
	id, ok := pathID(c, "branchId")
	if !ok {
		return invalidID(c, "branchId")
	}
	out, err := h.ledger.ListAssigned(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListUnassigned godoc
// @Summary      Productos del catálogo sin asignar a la sucursal
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        branchId  path  string  true  "ID de la sucursal"
// @Success      200       {array}   dto.ProductResponse
// @Router       /api/branch/{branchId}/products/unassigned [get]
func (h *BranchHandler) ListUnassigned(c *fiber.Ctx) error {
	id, ok := pathID(c, "branchId")
	if !ok {
		return invalidID(c, "branchId")
	}
	out, err := h.ledger.ListUnassigned(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Libro de movimientos de stock
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        productId    query  string  false  "Producto"
// @Param        branchId     query  string  false  "Sucursal"
// @Param        referenceId  query  string  false  "Solicitud u orden"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {array}   dto.StockMovementResponse
// @Router       /api/branch/movements [get]
func (h *BranchHandler) ListMovements(c *fiber.Ctx) error {
	var filter repository.StockMovementFilter
	for name, dst := range map[string]*string{
		"productId":   &filter.ProductID,
		"branchId":    &filter.BranchID,
		"referenceId": &filter.ReferenceID,
	} {
		id, ok := queryID(c, name)
		if !ok {
			return invalidID(c, name)
		}
		*dst = id
	}
	out, err := h.ledger.ListMovements(c.UserContext(), actorFrom(c), filter, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
