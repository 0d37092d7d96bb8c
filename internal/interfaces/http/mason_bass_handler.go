package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/usecase"
)

// MasonBassHandler cuadrillas de albañiles con código de descuento.
type MasonBassHandler struct {
	uc *usecase.MasonBassUseCase
}

// NewMasonBassHandler construye el handler.
func NewMasonBassHandler(uc *usecase.MasonBassUseCase) *MasonBassHandler {
	return &MasonBassHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cuadrilla
// @Tags         mason-bass
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MasonBassRequest  true  "Datos de la cuadrilla"
// @Success      201   {object}  dto.MasonBassResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/mason-bass [post]
func (h *MasonBassHandler) Create(c *fiber.Ctx) error {
	var in dto.MasonBassRequest
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
// @Summary      Listar cuadrillas
// @Tags         mason-bass
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MasonBassResponse
// @Router       /api/mason-bass [get]
func (h *MasonBassHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener cuadrilla
// @Tags         mason-bass
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.MasonBassResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mason-bass/{id} [get]
func (h *MasonBassHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar cuadrilla
// @Tags         mason-bass
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID"
// @Param        body  body  dto.MasonBassRequest  true  "Datos de la cuadrilla"
// @Success      200   {object}  dto.MasonBassResponse
// @Router       /api/mason-bass/{id} [put]
func (h *MasonBassHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.MasonBassRequest
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
// @Summary      Eliminar cuadrilla
// @Tags         mason-bass
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/mason-bass/{id} [delete]
func (h *MasonBassHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
