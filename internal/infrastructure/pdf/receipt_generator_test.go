package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"999":       "999,00",
		"25000":     "25.000,00",
		"1234567.5": "1.234.567,50",
		"-1500.25":  "-1.500,25",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "ABCDEF12", shortID("abcdef12-3456-7890"))
	assert.Equal(t, "X1", shortID("x1"))
}

func TestGenerateReceiptPDF(t *testing.T) {
	order := &entity.Order{
		ID:            "3f2c9a10-0000-4000-8000-000000000001",
		Status:        entity.OrderPaymentDone,
		Channel:       entity.ChannelInStore,
		PaymentMethod: entity.PaymentCash,
		NetAmount:     decimal.RequireFromString("45.00"),
		AmountPaid:    decimal.RequireFromString("50.00"),
		CreatedAt:     time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Products: []*entity.OrderProduct{
			{ProductName: "Pegante cerámico", Quantity: 3, UnitPrice: decimal.RequireFromString("15.00")},
		},
	}
	branch := &entity.Branch{Name: "Sucursal Centro", Address: "Calle 1", PhoneNumber: "3000000000"}
	customer := &entity.User{Name: "Ana", Email: "ana@example.com"}

	out, err := NewReceiptGenerator().GenerateReceiptPDF(context.Background(), order, branch, customer)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceiptPDF_SinOrden(t *testing.T) {
	_, err := NewReceiptGenerator().GenerateReceiptPDF(context.Background(), nil, &entity.Branch{}, nil)
	assert.Error(t, err)
}
