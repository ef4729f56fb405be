package main

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
	"github.com/jhoicas/clinic-stock-api/internal/infrastructure/postgres"
)

var categoryNames = []string{
	"Antibióticos",
	"Medicación crónica",
	"Medicación para la tos",
	"Cremas, lociones, ungüentos y geles",
	"Oído, nariz y garganta",
	"Planificación familiar",
	"Tracto gastrointestinal",
	"Inyectables",
	"Medicamentos para nebulizador",
	"Obstetricia y ginecología",
	"Analgésicos",
	"Medicación psicológica",
	"Sueros (vacoliters)",
	"Vacunas e inmunizaciones",
	"Vitaminas",
}

var baseDispensaries = []entity.Dispensary{
	{
		Name:        "Dispensario Clínica Principal",
		Type:        entity.DispensaryTypeMainClinic,
		Description: "Sede principal: inventario de medicamentos e insumos de la operación diaria.",
	},
	{
		Name:        "Clínica Móvil POD",
		Type:        entity.DispensaryTypePODMobile,
		Description: "Dispensario móvil con inventario propio para las jornadas de atención externa.",
	},
}

// seedCatalog es idempotente: lo que ya existe se omite.
func seedCatalog(c *cli.Context) error {
	ctx := c.Context
	pool := poolFrom(c)

	dispRepo := postgres.NewDispensaryRepository(pool)
	existing, err := dispRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]bool, len(existing))
	for _, d := range existing {
		byName[d.Name] = true
	}
	for _, d := range baseDispensaries {
		if byName[d.Name] {
			log.Info().Str("dispensary", d.Name).Msg("ya existe")
			continue
		}
		now := time.Now()
		d.ID = uuid.New().String()
		d.IsActive = true
		d.CreatedAt, d.UpdatedAt = now, now
		if err := dispRepo.Create(ctx, &d); err != nil {
			return err
		}
		log.Info().Str("dispensary", d.Name).Msg("creado")
	}

	catRepo := postgres.NewCategoryRepository(pool)
	for i, name := range categoryNames {
		cat := &entity.Category{ID: uuid.New().String(), Name: name, SortOrder: i + 1, CreatedAt: time.Now()}
		err := catRepo.Create(ctx, cat)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			log.Info().Str("category", name).Msg("ya existe")
		case err != nil:
			return err
		default:
			log.Info().Str("category", name).Msg("creada")
		}
	}
	log.Info().Int("categories", len(categoryNames)).Int("dispensaries", len(baseDispensaries)).Msg("catálogo listo")
	return nil
}
