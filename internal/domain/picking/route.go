package picking

import (
	"sort"
	"strings"
)

// GenerateRoute une las líneas activas de todos los planes en un solo recorrido ordenado por
// zona, posición y nivel (sin criterios de frescura: aquí importa el orden físico) y numera
// los pasos desde 1.
func GenerateRoute(plans []PickingPlan) []RouteEntry {
	route := make([]RouteEntry, 0)
	for _, p := range plans {
		for _, l := range p.Locations {
			if !l.ToPick.IsPositive() {
				continue
			}
			route = append(route, RouteEntry{
				Location:      l.Location,
				Zone:          l.Zone,
				Position:      l.Position,
				Level:         l.Level,
				ProductCode:   p.OriginalCode,
				BaseCode:      p.BaseCode,
				ProductName:   p.ProductName,
				Lot:           l.Lot,
				StockRecordID: l.StockRecordID,
				Quantity:      l.ToPick,
			})
		}
	}

	sort.SliceStable(route, func(i, j int) bool {
		a, b := route[i], route[j]
		if c := compareTokens(
			LocationToken{Zone: a.Zone, Position: a.Position, Level: a.Level},
			LocationToken{Zone: b.Zone, Position: b.Position, Level: b.Level},
		); c != 0 {
			return c < 0
		}
		if a.ProductCode != b.ProductCode {
			return a.ProductCode < b.ProductCode
		}
		return strings.Compare(a.StockRecordID, b.StockRecordID) < 0
	})

	for i := range route {
		route[i].Sequence = i + 1
	}
	return route
}
