package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/masonbass/retail-api/internal/domain"
)

func TestCode_ResuelveErroresEnvueltos(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("approve: %w", domain.ErrInsufficientStock), "INSUFFICIENT_STOCK"},
		{fmt.Errorf("item x: %w", domain.ErrInvalidReference), "INVALID_REFERENCE"},
		{domain.ErrUserNotFound, "USER_NOT_FOUND"},
		{domain.ErrNotFound, "NOT_FOUND"},
		{domain.ErrEmptyCart, "EMPTY_CART"},
		{errors.New("pgx: conexión cerrada"), "INTERNAL"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.Code(tc.err), tc.err.Error())
	}
}
