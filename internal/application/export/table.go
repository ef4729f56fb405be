package export

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Table reporte tabular independiente del formato de salida.
// Columns son claves snake_case (encabezado CSV); los formatos legibles usan Header.
type Table struct {
	Title       string
	GeneratedAt time.Time
	Columns     []string
	Rows        [][]string
}

var titleCaser = cases.Title(language.English)

// Header convierte una clave snake_case en un encabezado legible: "low_stock_threshold" → "Low Stock Threshold".
func Header(column string) string {
	return titleCaser.String(strings.ReplaceAll(column, "_", " "))
}

// Headers encabezados legibles de todas las columnas.
func (t Table) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = Header(c)
	}
	return out
}
