package picking

import "sort"

// DiagnosticKind clasifica un problema de calidad de datos.
type DiagnosticKind string

const (
	KindUnparseableLocation DiagnosticKind = "unparseable_location"
	KindCatalogRate         DiagnosticKind = "catalog_rate"
	KindFallbackRate        DiagnosticKind = "fallback_rate"
	KindMissingRate         DiagnosticKind = "missing_rate"
	KindNegativeQuantity    DiagnosticKind = "negative_quantity"
)

// Diagnostic advertencia legible sobre un registro de stock. Se devuelve aparte del resultado.
type Diagnostic struct {
	Kind          DiagnosticKind
	StockRecordID string
	Message       string
}

func (d Diagnostic) String() string { return d.Message }

// dedupeDiagnostics elimina repetidos (un mismo registro puede coincidir con varias demandas)
// conservando el orden de primera aparición.
func dedupeDiagnostics(in []Diagnostic) []Diagnostic {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[Diagnostic]struct{}, len(in))
	out := make([]Diagnostic, 0, len(in))
	for _, d := range in {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// CountByKind agrupa diagnósticos por tipo, útil para logs resumidos.
func CountByKind(diags []Diagnostic) map[DiagnosticKind]int {
	counts := make(map[DiagnosticKind]int)
	for _, d := range diags {
		counts[d.Kind]++
	}
	return counts
}

// SortedKinds devuelve los tipos presentes en orden alfabético.
func SortedKinds(counts map[DiagnosticKind]int) []DiagnosticKind {
	kinds := make([]DiagnosticKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
