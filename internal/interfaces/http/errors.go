package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/domain"
)

// statusFor código HTTP por error de dominio. Se evalúa en orden.
var statusFor = []struct {
	err    error
	status int
}{
	{domain.ErrUserNotFound, fiber.StatusNotFound},
	{domain.ErrNotFound, fiber.StatusNotFound},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{domain.ErrUnauthorized, fiber.StatusForbidden},
	{domain.ErrForbidden, fiber.StatusForbidden},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict},
	{domain.ErrAlreadyExists, fiber.StatusConflict},
	{domain.ErrInvalidState, fiber.StatusConflict},
	{domain.ErrInvalidTransition, fiber.StatusConflict},
	{domain.ErrInsufficientStock, fiber.StatusConflict},
	{domain.ErrOutOfStock, fiber.StatusConflict},
	{domain.ErrInvalidReference, fiber.StatusBadRequest},
	{domain.ErrWrongPassword, fiber.StatusBadRequest},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest},
	{domain.ErrEmptyCart, fiber.StatusBadRequest},
	{domain.ErrInvalidInput, fiber.StatusBadRequest},
	{domain.ErrUnavailable, fiber.StatusServiceUnavailable},
}

// respondError traduce err a status + dto.ErrorResponse.
// Los errores no tipificados se registran completos y se responden con un mensaje genérico.
func respondError(c *fiber.Ctx, err error) error {
	for _, s := range statusFor {
		if errors.Is(err, s.err) {
			return c.Status(s.status).JSON(dto.ErrorResponse{Code: domain.Code(err), Message: err.Error()})
		}
	}
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("user_id", GetUserID(c)).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// pathID lee un parámetro de ruta que debe ser un UUID; lo devuelve normalizado.
func pathID(c *fiber.Ctx, name string) (string, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// queryID como pathID para filtros opcionales: vacío es válido.
func queryID(c *fiber.Ctx, name string) (string, bool) {
	raw := c.Query(name)
	if raw == "" {
		return "", true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func invalidID(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: name + " debe ser un UUID válido"})
}
