package orders

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// ReceiptPDFGenerator genera el comprobante de una venta (implementación en infrastructure/pdf).
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order, branch *entity.Branch, customer *entity.User) ([]byte, error)
}
