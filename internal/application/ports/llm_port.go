package ports

import "context"

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Anthropic, OpenAI, mock) debe implementar esta interfaz.
type LLMService interface {
	// SuggestMedicationCategory recibe el nombre de un medicamento y la lista de categorías
	// existentes y devuelve el nombre de la categoría sugerida (puede no coincidir con ninguna).
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	SuggestMedicationCategory(ctx context.Context, medicationName string, categories []string) (string, error)
}
