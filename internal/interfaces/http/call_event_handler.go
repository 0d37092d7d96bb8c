package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/usecase"
)

// CallEventHandler registro de llamadas de clientes.
type CallEventHandler struct {
	uc *usecase.CallEventUseCase
}

// NewCallEventHandler construye el handler.
func NewCallEventHandler(uc *usecase.CallEventUseCase) *CallEventHandler {
	return &CallEventHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar llamada
// @Tags         calls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CallEventRequest  true  "Datos de la llamada"
// @Success      201   {object}  dto.CallEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calls [post]
func (h *CallEventHandler) Create(c *fiber.Ctx) error {
	var in dto.CallEventRequest
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
// @Summary      Listar llamadas
// @Tags         calls
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.CallEventListResponse
// @Router       /api/calls [get]
func (h *CallEventHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actorFrom(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener llamada
// @Tags         calls
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.CallEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/calls/{id} [get]
func (h *CallEventHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Get(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar registro de llamada
// @Tags         calls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID"
// @Param        body  body  dto.CallEventRequest  true  "Datos de la llamada"
// @Success      200   {object}  dto.CallEventResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/calls/{id} [put]
func (h *CallEventHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.CallEventRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de una llamada
// @Tags         calls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID"
// @Param        body  body  dto.CallStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.CallEventResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/calls/{id}/status [put]
func (h *CallEventHandler) ChangeStatus(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.CallStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), actorFrom(c), id, in.CallStatus)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro de llamada
// @Tags         calls
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/calls/{id} [delete]
func (h *CallEventHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
