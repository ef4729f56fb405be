package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var baseTime = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func tx(kind string, qty int, at time.Time) entity.StockTransaction {
	return entity.StockTransaction{
		ID:              "tx-" + kind,
		StockItemID:     "item-1",
		TransactionType: kind,
		Quantity:        qty,
		CreatedAt:       at,
	}
}

func daysAfter(n int) time.Time { return baseTime.AddDate(0, 0, n) }

// ──────────────────────────────────────────────────────────────────────────────
// AverageDailyConsumption
// ──────────────────────────────────────────────────────────────────────────────

func TestAverageDailyConsumption_SinHistorialEsCero(t *testing.T) {
	rate, err := inventory.AverageDailyConsumption(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate)
}

func TestAverageDailyConsumption_SoloIngresosEsCero(t *testing.T) {
	history := []entity.StockTransaction{
		tx(entity.TransactionTypeReceived, 100, daysAfter(0)),
		tx(entity.TransactionTypeAdjustment, 80, daysAfter(3)),
		tx(entity.TransactionTypeLost, 5, daysAfter(4)),
	}
	rate, err := inventory.AverageDailyConsumption(history)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate, "solo las dispensaciones cuentan como demanda")
}

func TestAverageDailyConsumption_PromedioSobreElPeriodo(t *testing.T) {
	history := []entity.StockTransaction{
		tx(entity.TransactionTypeIssued, 10, daysAfter(0)),
		tx(entity.TransactionTypeIssued, 20, daysAfter(10)),
	}
	rate, err := inventory.AverageDailyConsumption(history)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, rate, 1e-9, "30 unidades en 10 días")
}

func TestAverageDailyConsumption_UnaSolaDispensacionUsaUnDia(t *testing.T) {
	history := []entity.StockTransaction{
		tx(entity.TransactionTypeIssued, 12, daysAfter(5)),
	}
	rate, err := inventory.AverageDailyConsumption(history)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, rate, 1e-9)
}

func TestAverageDailyConsumption_MismoDiaUsaUnDia(t *testing.T) {
	history := []entity.StockTransaction{
		tx(entity.TransactionTypeIssued, 5, baseTime),
		tx(entity.TransactionTypeIssued, 5, baseTime.Add(12*time.Hour)),
	}
	rate, err := inventory.AverageDailyConsumption(history)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, rate, 1e-9)
}

func TestAverageDailyConsumption_DiasCompletosTruncados(t *testing.T) {
	// 2 días y 20 horas cuentan como 2 días completos.
	history := []entity.StockTransaction{
		tx(entity.TransactionTypeIssued, 6, baseTime),
		tx(entity.TransactionTypeIssued, 6, baseTime.Add(68*time.Hour)),
	}
	rate, err := inventory.AverageDailyConsumption(history)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, rate, 1e-9)
}

func TestAverageDailyConsumption_IndependienteDelOrden(t *testing.T) {
	ordered := []entity.StockTransaction{
		tx(entity.TransactionTypeIssued, 4, daysAfter(0)),
		tx(entity.TransactionTypeReceived, 50, daysAfter(1)),
		tx(entity.TransactionTypeIssued, 7, daysAfter(4)),
		tx(entity.TransactionTypeIssued, 9, daysAfter(8)),
	}
	shuffled := []entity.StockTransaction{ordered[2], ordered[3], ordered[1], ordered[0]}

	a, err := inventory.AverageDailyConsumption(ordered)
	require.NoError(t, err)
	b, err := inventory.AverageDailyConsumption(shuffled)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.InDelta(t, 20.0/8.0, a, 1e-9)
}

func TestAverageDailyConsumption_OtrosTiposNoAlteranLaTasa(t *testing.T) {
	issued := []entity.StockTransaction{
		tx(entity.TransactionTypeIssued, 10, daysAfter(0)),
		tx(entity.TransactionTypeIssued, 10, daysAfter(5)),
	}
	noisy := append([]entity.StockTransaction{
		tx(entity.TransactionTypeReceived, 500, daysAfter(-30)),
		tx(entity.TransactionTypeLost, 40, daysAfter(20)),
		tx(entity.TransactionTypeAdjustment, 3, daysAfter(40)),
	}, issued...)

	a, err := inventory.AverageDailyConsumption(issued)
	require.NoError(t, err)
	b, err := inventory.AverageDailyConsumption(noisy)
	require.NoError(t, err)
	assert.Equal(t, a, b, "received/lost/adjustment no cambian la tasa ni el período")
}

func TestAverageDailyConsumption_CantidadNegativaEsErrorDeIntegridad(t *testing.T) {
	history := []entity.StockTransaction{
		tx(entity.TransactionTypeIssued, 10, daysAfter(0)),
		tx(entity.TransactionTypeIssued, -3, daysAfter(2)),
	}
	_, err := inventory.AverageDailyConsumption(history)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
}

func TestAverageDailyConsumption_NuncaNegativa(t *testing.T) {
	histories := [][]entity.StockTransaction{
		nil,
		{tx(entity.TransactionTypeIssued, 0, daysAfter(0))},
		{tx(entity.TransactionTypeIssued, 1, daysAfter(0)), tx(entity.TransactionTypeIssued, 0, daysAfter(90))},
		{tx(entity.TransactionTypeLost, 100, daysAfter(0))},
	}
	for _, h := range histories {
		rate, err := inventory.AverageDailyConsumption(h)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rate, 0.0)
	}
}
