package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/clinic-stock-api/internal/domain"
)

// Charsets soportados en CSV.
const (
	CharsetUTF8        = "utf-8"
	CharsetWindows1252 = "windows-1252" // para abrir el CSV directamente en Excel en Windows
)

// RenderCSV escribe la tabla como CSV (encabezado = claves de columna).
func RenderCSV(t Table, charset string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("csv: encabezado: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("csv: filas: %w", err)
	}
	switch charset {
	case "", CharsetUTF8:
		return buf.Bytes(), nil
	case CharsetWindows1252:
		// Los caracteres sin equivalente en windows-1252 se reemplazan en vez de fallar.
		enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
		out, _, err := transform.Bytes(enc, buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("csv: convertir a windows-1252: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: charset %q no soportado", domain.ErrInvalidInput, charset)
}

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Generado el {{.GeneratedAt.Format "2006-01-02 15:04"}}</p>
<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

// RenderHTML genera un documento HTML con la tabla (sin estilos).
func RenderHTML(t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlReport.Execute(&buf, t); err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}
	return buf.Bytes(), nil
}
