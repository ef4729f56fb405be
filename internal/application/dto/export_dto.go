package dto

// ExportResponse reporte exportado como texto (CSV o HTML).
type ExportResponse struct {
	Data     string `json:"data"`
	Filename string `json:"filename"`
}
