package entity

import "time"

// Roles válidos para User.
const (
	RoleUser            = "user"
	RoleAdmin           = "admin"
	RoleStockController = "stock_controller"
	RoleManager         = "manager"
	RoleFounder         = "founder"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	PhoneNumber  string
	Role         string // user, admin, stock_controller, manager, founder
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSignedIn *time.Time
}

// IsValidRole indica si role es un rol soportado.
func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleStockController, RoleManager, RoleFounder:
		return true
	}
	return false
}

// StockController destinatario de alertas de stock con sus preferencias de notificación.
type StockController struct {
	UserID       string
	Name         string
	Email        string
	PhoneNumber  string
	EmailEnabled bool
	SMSEnabled   bool
}
