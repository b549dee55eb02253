package picking

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Allocation resultado del reparto voraz sobre la lista ordenada.
type Allocation struct {
	Locations      []PickingLocation // todas las candidatas, con ToPick/Remaining
	TotalAvailable decimal.Decimal
	Status         PlanStatus
	Percentage     decimal.Decimal
}

// Allocate reparte totalNeeded sobre los candidatos en el orden recibido:
// ToPick = min(Available, pendiente). Recorre todos los candidatos aunque la necesidad
// se cubra antes, para que TotalAvailable refleje la suma real. No modifica la entrada.
func Allocate(sorted []PickingLocation, totalNeeded decimal.Decimal) (Allocation, error) {
	if !totalNeeded.IsPositive() {
		return Allocation{}, ErrNonPositiveQuantity
	}

	out := make([]PickingLocation, len(sorted))
	remainingNeed := totalNeeded
	totalAvailable := decimal.Zero
	for i, c := range sorted {
		available := c.Available
		if available.IsNegative() {
			available = decimal.Zero
		}
		toPick := decimal.Min(available, remainingNeed)
		remainingNeed = remainingNeed.Sub(toPick)
		totalAvailable = totalAvailable.Add(available)

		c.Available = available
		c.ToPick = toPick
		c.Remaining = available.Sub(toPick)
		out[i] = c
	}

	alloc := Allocation{
		Locations:      out,
		TotalAvailable: totalAvailable,
		Percentage:     coverage(totalAvailable, totalNeeded),
	}
	switch {
	case len(sorted) == 0:
		alloc.Status = StatusNotFound
		alloc.Percentage = decimal.Zero
	case totalAvailable.GreaterThanOrEqual(totalNeeded):
		alloc.Status = StatusSufficient
	default:
		alloc.Status = StatusInsufficient
	}
	return alloc, nil
}

// coverage = min(disponible/necesario, 1) * 100, redondeado a 2 decimales.
func coverage(available, needed decimal.Decimal) decimal.Decimal {
	if !available.IsPositive() || !needed.IsPositive() {
		return decimal.Zero
	}
	ratio := available.Div(needed)
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		ratio = decimal.NewFromInt(1)
	}
	return ratio.Mul(hundred).Round(2)
}

// PlanDemand calcula el plan de una demanda contra la foto completa de stock.
func PlanDemand(demand entity.ProductDemand, snapshot []entity.StockRecord, opts Options) (*PickingPlan, []Diagnostic, error) {
	if !demand.RequestedQuantity.IsPositive() {
		return nil, nil, fmt.Errorf("%w (código %q, cantidad %s)",
			ErrNonPositiveQuantity, demand.ProductCode, demand.RequestedQuantity.String())
	}

	code := ParseMultiplier(demand.ProductCode)
	totalNeeded := code.Apply(demand.RequestedQuantity)

	candidates, diags := buildCandidates(SelectCandidates(snapshot, code.BaseCode), opts)
	SortByFreshness(candidates)

	alloc, err := Allocate(candidates, totalNeeded)
	if err != nil {
		return nil, diags, err
	}

	return &PickingPlan{
		OriginalCode:     demand.ProductCode,
		BaseCode:         code.BaseCode,
		Multiplier:       code.Multiplier,
		ProductName:      demand.ProductName,
		OriginalQuantity: demand.RequestedQuantity,
		TotalNeeded:      totalNeeded,
		TotalAvailable:   alloc.TotalAvailable,
		Status:           alloc.Status,
		Percentage:       alloc.Percentage,
		Locations:        activeLocations(alloc.Locations),
	}, diags, nil
}

// buildCandidates convierte registros a candidatos en unidades base. Los registros con
// ubicación no reconocida quedan fuera (no se pueden recorrer) y se informan.
func buildCandidates(records []entity.StockRecord, opts Options) ([]PickingLocation, []Diagnostic) {
	var diags []Diagnostic
	candidates := make([]PickingLocation, 0, len(records))
	for _, r := range records {
		available, d := ResolveBaseQuantity(r, opts)
		diags = append(diags, d...)

		tok, err := ParseLocation(r.Location)
		if err != nil {
			diags = append(diags, Diagnostic{
				Kind:          KindUnparseableLocation,
				StockRecordID: r.ID,
				Message: fmt.Sprintf("registro %s (%s): ubicación %q no reconocida, se excluyen %s unidades del recorrido",
					r.ID, r.Code, r.Location, available.String()),
			})
			continue
		}
		candidates = append(candidates, PickingLocation{
			StockRecordID:   r.ID,
			Location:        r.Location,
			Zone:            tok.Zone,
			Position:        tok.Position,
			Level:           tok.Level,
			Available:       available,
			Remaining:       available,
			Lot:             r.Lot,
			ManufactureDate: r.ManufactureDate,
			CreatedAt:       r.CreatedAt,
		})
	}
	return candidates, diags
}

func activeLocations(all []PickingLocation) []PickingLocation {
	active := make([]PickingLocation, 0, len(all))
	for _, l := range all {
		if l.ToPick.IsPositive() {
			active = append(active, l)
		}
	}
	return active
}
