package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/inventory"
)

func TestApplyTransaction(t *testing.T) {
	cases := []struct {
		name     string
		prev     int
		kind     string
		qty      int
		expected int
	}{
		{"ingreso suma", 10, entity.TransactionTypeReceived, 5, 15},
		{"dispensación resta", 10, entity.TransactionTypeIssued, 4, 6},
		{"dispensación no baja de cero", 3, entity.TransactionTypeIssued, 10, 0},
		{"pérdida resta", 10, entity.TransactionTypeLost, 10, 0},
		{"ajuste es absoluto", 10, entity.TransactionTypeAdjustment, 42, 42},
		{"ajuste a cero", 10, entity.TransactionTypeAdjustment, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.ApplyTransaction(tc.prev, tc.kind, tc.qty)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestApplyTransaction_Invalidos(t *testing.T) {
	_, err := inventory.ApplyTransaction(10, entity.TransactionTypeIssued, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.ApplyTransaction(10, entity.TransactionTypeReceived, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.ApplyTransaction(10, "transfer", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
