package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/stockrequest"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

// StockRequestHandler flujo de solicitudes de reposición (agente ↔ admin).
type StockRequestHandler struct {
	uc *stockrequest.WorkflowUseCase
}

// NewStockRequestHandler construye el handler.
func NewStockRequestHandler(uc *stockrequest.WorkflowUseCase) *StockRequestHandler {
	return &StockRequestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de reposición
// @Description  El agente pide unidades para productos ya asignados a su sucursal.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequestRequest  true  "Sucursal e ítems"
// @Success      201   {object}  dto.StockRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/create [post]
func (h *StockRequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequestRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar ítems de una solicitud pendiente
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        requestId  path  string                         true  "ID de la solicitud"
// @Param        body       body  dto.UpdateStockRequestRequest  true  "Ítems"
// @Success      200        {object}  dto.StockRequestResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/stock/{requestId} [put]
func (h *StockRequestHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "requestId")
	if !ok {
		return invalidID(c, "requestId")
	}
	var in dto.UpdateStockRequestRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Decide godoc
// @Summary      Aprobar o rechazar solicitud (admin)
// @Description  action=approve (por defecto) fija las cantidades aprobadas; action=reject cierra la solicitud.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        requestId  path   string                          true   "ID de la solicitud"
// @Param        action     query  string                          false  "approve | reject"
// @Param        body       body   dto.ApproveStockRequestRequest  false  "Decisiones por ítem"
// @Success      200        {object}  dto.StockRequestResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/stock/{requestId}/approve [post]
func (h *StockRequestHandler) Decide(c *fiber.Ctx) error {
	id, ok := pathID(c, "requestId")
	if !ok {
		return invalidID(c, "requestId")
	}
	var in dto.ApproveStockRequestRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	var (
		out *dto.StockRequestResponse
		err error
	)
	switch strings.ToLower(c.Query("action", "approve")) {
	case "approve":
		out, err = h.uc.Approve(c.UserContext(), actorFrom(c), id, in)
	case "reject":
		out, err = h.uc.Reject(c.UserContext(), actorFrom(c), id, in.Note)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "action debe ser approve o reject"})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deliver godoc
// @Summary      Marcar solicitud como despachada (admin)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        requestId  path  string                          true   "ID de la solicitud"
// @Param        body       body  dto.DeliverStockRequestRequest  false  "Nota"
// @Success      200        {object}  dto.StockRequestResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/stock/{requestId}/deliver [post]
func (h *StockRequestHandler) Deliver(c *fiber.Ctx) error {
	id, ok := pathID(c, "requestId")
	if !ok {
		return invalidID(c, "requestId")
	}
	var in dto.DeliverStockRequestRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.MarkDelivered(c.UserContext(), actorFrom(c), id, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Confirmar recepción (agente)
// @Description  Transfiere lo recibido del depósito central a la sucursal en una sola transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        requestId  path  string                          true  "ID de la solicitud"
// @Param        body       body  dto.ReceiveStockRequestRequest  true  "Cantidades recibidas"
// @Success      200        {object}  dto.StockRequestResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/stock/{requestId}/receive [post]
func (h *StockRequestHandler) Receive(c *fiber.Ctx) error {
	id, ok := pathID(c, "requestId")
	if !ok {
		return invalidID(c, "requestId")
	}
	var in dto.ReceiveStockRequestRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Receive(c.UserContext(), actorFrom(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener solicitud
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        requestId  path  string  true  "ID de la solicitud"
// @Success      200        {object}  dto.StockRequestResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/stock/{requestId} [get]
func (h *StockRequestHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "requestId")
	if !ok {
		return invalidID(c, "requestId")
	}
	out, err := h.uc.Get(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar solicitud
// @Description  Solo en PENDING, REJECTED o COMPLETED.
// @Tags         stock
// @Security     Bearer
// @Param        requestId  path  string  true  "ID de la solicitud"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{requestId} [delete]
func (h *StockRequestHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "requestId")
	if !ok {
		return invalidID(c, "requestId")
	}
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAll godoc
// @Summary      Listar todas las solicitudes (admin)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "Estado"
// @Param        branchId  query  string  false  "Sucursal"
// @Success      200       {array}   dto.StockRequestResponse
// @Router       /api/stock/all [get]
func (h *StockRequestHandler) ListAll(c *fiber.Ctx) error {
	branchID, ok := queryID(c, "branchId")
	if !ok {
		return invalidID(c, "branchId")
	}
	filter := repository.StockRequestFilter{Status: c.Query("status"), BranchID: branchID}
	out, err := h.uc.ListAll(c.UserContext(), actorFrom(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListBranch godoc
// @Summary      Solicitudes de la sucursal del agente
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Success      200     {array}   dto.StockRequestResponse
// @Router       /api/stock/branch [get]
func (h *StockRequestHandler) ListBranch(c *fiber.Ctx) error {
	out, err := h.uc.ListForAgent(c.UserContext(), actorFrom(c), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
