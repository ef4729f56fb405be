// Package pdf genera los reportes de exportación en PDF con Maroto v2.
//
// Layout de la página A4 (horizontal si la tabla tiene más de 6 columnas):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO del reporte              │  Generado el <fecha>     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ENCABEZADO (fondo azul): una celda por columna              │
//	│  FILAS: una por registro, zebra gris claro                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Total de registros                                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/clinic-stock-api/internal/application/export"
)

var _ export.PDFRenderer = (*MarotoTableRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorZebra   = &props.Color{Red: 240, Green: 240, Blue: 240}
)

const landscapeFromColumns = 7

// MarotoTableRenderer implementa export.PDFRenderer usando Maroto v2.
type MarotoTableRenderer struct {
	author string
}

// NewMarotoTableRenderer construye el renderer; author se graba en los metadatos del PDF.
func NewMarotoTableRenderer(author string) *MarotoTableRenderer {
	return &MarotoTableRenderer{author: author}
}

// RenderTable genera el PDF de la tabla y devuelve sus bytes.
func (g *MarotoTableRenderer) RenderTable(ctx context.Context, t export.Table) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("pdf: la tabla no tiene columnas")
	}

	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithMaxGridSize(len(t.Columns)).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(t.Title, true).
		WithAuthor(g.author, true)
	if len(t.Columns) >= landscapeFromColumns {
		builder = builder.WithOrientation(orientation.Horizontal)
	}
	m := maroto.New(builder.Build())

	m.AddRows(titleRow(t, len(t.Columns)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(t.Headers()))
	for i, r := range t.Rows {
		m.AddRows(dataRow(r, len(t.Columns), i%2 == 1))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(len(t.Columns)).Add(
		text.New(fmt.Sprintf("Total de registros: %d", len(t.Rows)), props.Text{
			Size: 8, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// titleRow: título (izq) y fecha de generación (der), repartidos sobre toda la grilla.
func titleRow(t export.Table, grid int) core.Row {
	left := grid - grid/3
	return row.New(14).Add(
		col.New(left).Add(text.New(t.Title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(grid-left).Add(text.New("Generado el "+t.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 4,
		})),
	)
}

func headerRow(headers []string) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for _, h := range headers {
		cols = append(cols, col.New(1).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 7, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func dataRow(values []string, width int, zebra bool) core.Row {
	cols := make([]core.Col, 0, width)
	for i := 0; i < width; i++ {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cols = append(cols, col.New(1).Add(text.New(v, props.Text{
			Size: 7, Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(7).Add(cols...)
	if zebra {
		r = r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
	}
	return r
}
