package inventory

import "sort"

// MoreUrgent comparador compuesto de urgencia:
//  1. los que necesitan reorden van antes que los que no;
//  2. dentro del mismo grupo, días conocidos antes que desconocidos;
//  3. entre conocidos, menos días primero.
func MoreUrgent(a, b AnalyticsResult) bool {
	if a.NeedsReorder != b.NeedsReorder {
		return a.NeedsReorder
	}
	aDays, aKnown := a.DaysUntilDepletion.Get()
	bDays, bKnown := b.DaysUntilDepletion.Get()
	if aKnown != bKnown {
		return aKnown
	}
	return aKnown && aDays < bDays
}

// RankByUrgency devuelve una copia ordenada por urgencia. El orden es estable:
// los empates conservan el orden de entrada, así dos llamadas sobre los mismos datos
// producen la misma salida.
func RankByUrgency(results []AnalyticsResult) []AnalyticsResult {
	ranked := make([]AnalyticsResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return MoreUrgent(ranked[i], ranked[j])
	})
	return ranked
}
