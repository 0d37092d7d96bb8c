package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/inventory"
	"github.com/masonbass/retail-api/internal/application/orders"
)

// AgentHandler operaciones del agente en su sucursal: stock disponible y venta en tienda.
type AgentHandler struct {
	ledger   *inventory.LedgerUseCase
	checkout *orders.CheckoutUseCase
}

// NewAgentHandler construye el handler.
func NewAgentHandler(ledger *inventory.LedgerUseCase, checkout *orders.CheckoutUseCase) *AgentHandler {
	return &AgentHandler{ledger: ledger, checkout: checkout}
}

// Products godoc
// @Summary      Stock disponible de la sucursal del agente
// @Tags         agent
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.BranchProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/agent/products [get]
func (h *AgentHandler) Products(c *fiber.Ctx) error {
	out, err := h.ledger.ListAgentStock(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateOrder godoc
// @Summary      Venta en tienda
// @Description  Crea la orden ya pagada y descuenta el stock de la sucursal del agente. Acepta Idempotency-Key.
// @Tags         agent
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                 false  "Llave de idempotencia"
// @Param        body             body    dto.AgentOrderRequest  true   "Cliente, ítems y pago"
// @Success      201              {object}  dto.OrderResponse
// @Failure      400              {object}  dto.ErrorResponse
// @Failure      409              {object}  dto.ErrorResponse
// @Router       /api/agent/orders [post]
func (h *AgentHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.AgentOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.checkout.CreateAgentOrder(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Receipt godoc
// @Summary      Recibo PDF de una venta
// @Tags         agent
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/agent/orders/{id}/receipt [get]
func (h *AgentHandler) Receipt(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	pdf, err := h.checkout.Receipt(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="recibo-%s.pdf"`, id))
	return c.Send(pdf)
}

