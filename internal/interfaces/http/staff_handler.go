package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masonbass/retail-api/internal/application/auth"
	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/domain/entity"
)

// StaffHandler altas, cambios y bajas de cuentas (admin).
type StaffHandler struct {
	uc *auth.AuthUseCase
}

// NewStaffHandler construye el handler.
func NewStaffHandler(uc *auth.AuthUseCase) *StaffHandler {
	return &StaffHandler{uc: uc}
}

// CreateAgent godoc
// @Summary      Crear agente (admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStaffRequest  true  "Datos del agente"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/agents [post]
func (h *StaffHandler) CreateAgent(c *fiber.Ctx) error { return h.create(c, entity.RoleAgent) }

// CreateRep godoc
// @Summary      Crear representante (admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStaffRequest  true  "Datos del representante"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/reps [post]
func (h *StaffHandler) CreateRep(c *fiber.Ctx) error { return h.create(c, entity.RoleRep) }

// UpdateAgent godoc
// @Summary      Editar agente (admin)
// @Description  password vacío u omitido conserva la contraseña actual.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del agente"
// @Param        body  body  dto.UpdateStaffRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/agents/{id} [put]
func (h *StaffHandler) UpdateAgent(c *fiber.Ctx) error { return h.update(c, entity.RoleAgent) }

// UpdateRep godoc
// @Summary      Editar representante (admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del representante"
// @Param        body  body  dto.UpdateStaffRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/reps/{id} [put]
func (h *StaffHandler) UpdateRep(c *fiber.Ctx) error { return h.update(c, entity.RoleRep) }

// DeleteAgent godoc
// @Summary      Eliminar agente (admin)
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID del agente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/agents/{id} [delete]
func (h *StaffHandler) DeleteAgent(c *fiber.Ctx) error { return h.remove(c, entity.RoleAgent) }

// DeleteRep godoc
// @Summary      Eliminar representante (admin)
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID del representante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/reps/{id} [delete]
func (h *StaffHandler) DeleteRep(c *fiber.Ctx) error { return h.remove(c, entity.RoleRep) }

// RemoveAccount godoc
// @Summary      Eliminar cualquier cuenta (admin)
// @Description  Falla con 409 si el usuario tiene órdenes, solicitudes o visitas registradas.
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *StaffHandler) RemoveAccount(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.RemoveAccount(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *StaffHandler) create(c *fiber.Ctx, role string) error {
	var in dto.CreateStaffRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateStaff(c.UserContext(), actorFrom(c), role, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *StaffHandler) update(c *fiber.Ctx, role string) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateStaffRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateStaff(c.UserContext(), actorFrom(c), role, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *StaffHandler) remove(c *fiber.Ctx, role string) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.DeleteStaff(c.UserContext(), actorFrom(c), role, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
