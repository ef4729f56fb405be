package inventory

import (
	"math"
	"strconv"
)

// Days número de días que puede ser desconocido.
// El valor cero es "desconocido"; nunca se confunde con 0 días conocidos (ya agotado).
type Days struct {
	value int
	known bool
}

// KnownDays construye un valor conocido.
func KnownDays(n int) Days { return Days{value: n, known: true} }

// UnknownDays construye el valor "sin base para predecir".
func UnknownDays() Days { return Days{} }

// Get devuelve el número de días y si es conocido.
func (d Days) Get() (int, bool) { return d.value, d.known }

// IsKnown indica si hay una predicción.
func (d Days) IsKnown() bool { return d.known }

func (d Days) String() string {
	if !d.known {
		return "desconocido"
	}
	return strconv.Itoa(d.value)
}

// MarshalJSON serializa como número o null.
func (d Days) MarshalJSON() ([]byte, error) {
	if !d.known {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(d.value), 10), nil
}

// UnmarshalJSON acepta un número entero o null.
func (d *Days) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*d = UnknownDays()
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*d = KnownDays(n)
	return nil
}

// PredictDepletion estima los días hasta agotar el stock: floor(cantidad / consumo).
// Con consumo 0 no hay base para predecir y devuelve UnknownDays.
func PredictDepletion(currentQuantity int, avgDailyConsumption float64) Days {
	if avgDailyConsumption <= 0 {
		return UnknownDays()
	}
	return KnownDays(int(math.Floor(float64(currentQuantity) / avgDailyConsumption)))
}
