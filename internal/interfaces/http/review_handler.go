package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/usecase"
)

// ReviewHandler reseñas de productos de órdenes entregadas.
type ReviewHandler struct {
	uc *usecase.ReviewUseCase
}

// NewReviewHandler construye el handler.
func NewReviewHandler(uc *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reseña
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReviewRequest  true  "Producto, orden, puntaje"
// @Success      201   {object}  dto.ReviewResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
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
// @Summary      Editar reseña propia
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la reseña"
// @Param        body  body  dto.UpdateReviewRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ReviewResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reviews/{id} [put]
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateReviewRequest
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
// @Summary      Eliminar reseña propia
// @Tags         reviews
// @Security     Bearer
// @Param        id   path  string  true  "ID de la reseña"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByOrder godoc
// @Summary      Reseñas de una orden propia
// @Tags         reviews
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden"
// @Success      200      {array}   dto.ReviewResponse
// @Router       /api/reviews/order/{orderId} [get]
func (h *ReviewHandler) ListByOrder(c *fiber.Ctx) error {
	id, ok := pathID(c, "orderId")
	if !ok {
		return invalidID(c, "orderId")
	}
	out, err := h.uc.ListByOrder(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Reseñas de un producto
// @Tags         reviews
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {array}   dto.ReviewResponse
// @Router       /api/reviews/product/{productId} [get]
func (h *ReviewHandler) ListByProduct(c *fiber.Ctx) error {
	id, ok := pathID(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	out, err := h.uc.ListByProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Todas las reseñas (admin)
// @Tags         reviews
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}   dto.ReviewResponse
// @Router       /api/reviews [get]
func (h *ReviewHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
