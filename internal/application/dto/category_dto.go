package dto

import "time"

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// CategoryResponse salida de una categoría de medicamentos.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClassifyMedicationRequest body para POST /api/categories/classify.
type ClassifyMedicationRequest struct {
	Name string `json:"name"`
}

// ClassifyMedicationResponse sugerencia de categoría. CategoryID es null si la
// sugerencia del modelo no coincide con ninguna categoría existente.
type ClassifyMedicationResponse struct {
	CategoryID   *string `json:"category_id"`
	CategoryName string  `json:"category_name"`
}
