package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/usecase"
)

// VisitHandler visitas comerciales de los representantes.
type VisitHandler struct {
	uc *usecase.VisitUseCase
}

// NewVisitHandler construye el handler.
func NewVisitHandler(uc *usecase.VisitUseCase) *VisitHandler {
	return &VisitHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar visita
// @Tags         visits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VisitRequest  true  "Datos de la visita"
// @Success      201   {object}  dto.VisitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/visits [post]
func (h *VisitHandler) Create(c *fiber.Ctx) error {
	var in dto.VisitRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener visita
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.VisitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/{id} [get]
func (h *VisitHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Reemplazar visita
// @Tags         visits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID"
// @Param        body  body  dto.VisitRequest  true  "Datos de la visita"
// @Success      200   {object}  dto.VisitResponse
// @Router       /api/visits/{id} [put]
func (h *VisitHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.VisitRequest
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
// @Summary      Eliminar visita
// @Tags         visits
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/visits/{id} [delete]
func (h *VisitHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByBranch godoc
// @Summary      Visitas de una sucursal
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        branchId  path  string  true  "ID de la sucursal"
// @Success      200       {array}   dto.VisitResponse
// @Router       /api/visits/branch/{branchId} [get]
func (h *VisitHandler) ListByBranch(c *fiber.Ctx) error {
	id, ok := pathID(c, "branchId")
	if !ok {
		return invalidID(c, "branchId")
	}
	out, err := h.uc.ListByBranch(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListBySalesRep godoc
// @Summary      Visitas de un representante
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        repId  path  string  true  "ID del representante"
// @Success      200    {array}   dto.VisitResponse
// @Router       /api/visits/rep/{repId} [get]
func (h *VisitHandler) ListBySalesRep(c *fiber.Ctx) error {
	id, ok := pathID(c, "repId")
	if !ok {
		return invalidID(c, "repId")
	}
	out, err := h.uc.ListBySalesRep(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
