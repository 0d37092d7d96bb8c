package stockrequest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{entity.StockRequestPending, entity.StockRequestApproved, true},
		{entity.StockRequestPending, entity.StockRequestRejected, true},
		{entity.StockRequestApproved, entity.StockRequestDelivered, true},
		{entity.StockRequestDelivered, entity.StockRequestCompleted, true},
		{entity.StockRequestPending, entity.StockRequestDelivered, false},
		{entity.StockRequestApproved, entity.StockRequestRejected, false},
		{entity.StockRequestCompleted, entity.StockRequestPending, false},
		{entity.StockRequestRejected, entity.StockRequestApproved, false},
		{"DESCONOCIDO", entity.StockRequestApproved, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsDeletable(t *testing.T) {
	assert.True(t, IsDeletable(entity.StockRequestPending))
	assert.True(t, IsDeletable(entity.StockRequestRejected))
	assert.True(t, IsDeletable(entity.StockRequestCompleted))
	assert.False(t, IsDeletable(entity.StockRequestApproved))
	assert.False(t, IsDeletable(entity.StockRequestDelivered))
}
