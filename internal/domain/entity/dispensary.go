package entity

import "time"

// Tipos de dispensario.
const (
	DispensaryTypeMainClinic = "main_clinic"
	DispensaryTypePODMobile  = "pod_mobile"
)

// Dispensary representa un dispensario de la clínica (sede principal o clínica móvil).
// Cada dispensario maneja su propio inventario.
type Dispensary struct {
	ID          string
	Name        string
	Type        string // main_clinic, pod_mobile
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsValidDispensaryType indica si t es un tipo de dispensario soportado.
func IsValidDispensaryType(t string) bool {
	return t == DispensaryTypeMainClinic || t == DispensaryTypePODMobile
}
