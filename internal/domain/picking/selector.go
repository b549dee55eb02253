package picking

import (
	"strings"

	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
)

// SelectCandidates filtra los registros cuyo código coincide exactamente (sin distinguir
// mayúsculas) con baseCode. Un código vacío nunca coincide.
func SelectCandidates(records []entity.StockRecord, baseCode string) []entity.StockRecord {
	want := normalizeCode(baseCode)
	if want == "" {
		return nil
	}
	var out []entity.StockRecord
	for _, r := range records {
		if normalizeCode(r.Code) == want {
			out = append(out, r)
		}
	}
	return out
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
