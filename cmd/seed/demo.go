package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/domain/repository"
	"github.com/jhoicas/clinic-stock-api/internal/infrastructure/postgres"
)

type demoItem struct {
	name      string
	category  string
	received  int
	dailyUse  int // unidades dispensadas por día (se alterna +-1)
	threshold int
	price     string
}

var demoItems = []demoItem{
	{"Amoxicilina 500 mg", "Antibióticos", 400, 12, 40, "850.00"},
	{"Ibuprofeno 400 mg", "Analgésicos", 600, 18, 60, "320.50"},
	{"Salbutamol inhalador", "Medicamentos para nebulizador", 60, 1, 10, "12500.00"},
	{"Losartán 50 mg", "Medicación crónica", 300, 9, 30, "410.00"},
	{"Vitamina C 500 mg", "Vitaminas", 200, 0, 20, "150.00"},
}

// seedDemo crea los ítems de ejemplo en cada dispensario activo con una entrada inicial
// y un historial diario de dispensaciones.
func seedDemo(c *cli.Context) error {
	ctx := c.Context
	pool := poolFrom(c)
	days := c.Int("days")
	if days <= 0 {
		return errors.New("--days debe ser positivo")
	}

	cats, err := postgres.NewCategoryRepository(pool).List(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		return errors.New("no hay categorías: ejecute primero `seed catalog`")
	}
	catByName := make(map[string]string, len(cats))
	for _, cat := range cats {
		catByName[cat.Name] = cat.ID
	}
	dispensaries, err := postgres.NewDispensaryRepository(pool).ListActive(ctx)
	if err != nil {
		return err
	}

	runner := postgres.NewTxRunner(pool)
	start := time.Now().AddDate(0, 0, -days)
	for _, d := range dispensaries {
		for _, it := range demoItems {
			if err := seedDemoItem(ctx, runner, d.ID, catByName[it.category], it, start, days); err != nil {
				return err
			}
		}
		log.Info().Str("dispensary", d.Name).Int("items", len(demoItems)).Int("days", days).Msg("demo creado")
	}
	return nil
}

func seedDemoItem(ctx context.Context, runner *postgres.TxRunner, dispensaryID, categoryID string, it demoItem, start time.Time, days int) error {
	price := decimal.RequireFromString(it.price)
	item := &entity.StockItem{
		ID:                uuid.New().String(),
		DispensaryID:      dispensaryID,
		CategoryID:        categoryID,
		Name:              it.name,
		UnitPrice:         &price,
		Source:            "seed",
		LowStockThreshold: it.threshold,
		CreatedAt:         start,
		UpdatedAt:         start,
	}
	return runner.Run(ctx, func(items repository.StockItemRepository, txs repository.StockTransactionRepository) error {
		if err := items.Create(ctx, item); err != nil {
			return err
		}
		qty := 0
		record := func(txType string, q int, at time.Time) error {
			prev := qty
			if txType == entity.TransactionTypeReceived {
				qty += q
			} else {
				qty = max(0, qty-q)
			}
			return txs.Create(ctx, &entity.StockTransaction{
				ID:               uuid.New().String(),
				StockItemID:      item.ID,
				DispensaryID:     dispensaryID,
				TransactionType:  txType,
				Quantity:         q,
				PreviousQuantity: prev,
				NewQuantity:      qty,
				Reason:           "seed",
				CreatedAt:        at,
			})
		}
		if err := record(entity.TransactionTypeReceived, it.received, start); err != nil {
			return err
		}
		for day := 1; day <= days && it.dailyUse > 0; day++ {
			use := it.dailyUse + (day%3 - 1)
			if use <= 0 {
				continue
			}
			if err := record(entity.TransactionTypeIssued, use, start.AddDate(0, 0, day)); err != nil {
				return err
			}
		}
		return items.UpdateQuantity(ctx, item.ID, qty)
	})
}
