package entity

import "time"

// Category representa una categoría de medicamentos (ej. Antibióticos, Vacunas).
type Category struct {
	ID          string
	Name        string // único
	Description string
	SortOrder   int
	CreatedAt   time.Time
}
