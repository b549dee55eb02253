package picking

import (
	"sort"
	"strings"
	"time"
)

// SortByFreshness ordena candidatos con política FEFO: fecha de fabricación ascendente
// (con fecha antes que sin fecha), lote, zona, posición y nivel. Fecha de ingreso e ID de
// registro desempatan para que el orden sea total y reproducible.
func SortByFreshness(candidates []PickingLocation) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return compareFreshness(candidates[i], candidates[j]) < 0
	})
}

func compareFreshness(a, b PickingLocation) int {
	if c := compareOptionalTime(a.ManufactureDate, b.ManufactureDate); c != 0 {
		return c
	}
	if c := strings.Compare(a.Lot, b.Lot); c != 0 {
		return c
	}
	if c := compareTokens(a.token(), b.token()); c != 0 {
		return c
	}
	if c := compareOptionalTime(a.CreatedAt, b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.StockRecordID, b.StockRecordID)
}

// compareOptionalTime: presente antes que ausente; entre presentes, más antiguo primero.
func compareOptionalTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}

func (p PickingLocation) token() LocationToken {
	return LocationToken{Zone: p.Zone, Position: p.Position, Level: p.Level}
}
