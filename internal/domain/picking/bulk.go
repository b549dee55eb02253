package picking

import (
	"fmt"

	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
)

// BulkPlan calcula un plan por demanda, el recorrido unificado y el resumen.
// Una lista vacía o una demanda con cantidad no positiva rechazan la llamada completa.
func BulkPlan(demands []entity.ProductDemand, snapshot []entity.StockRecord, opts Options) (*BulkPlanResult, []Diagnostic, error) {
	if err := ValidateDemands(demands); err != nil {
		return nil, nil, err
	}

	var diags []Diagnostic
	plans := make([]PickingPlan, 0, len(demands))
	for _, d := range demands {
		plan, planDiags, err := PlanDemand(d, snapshot, opts)
		diags = append(diags, planDiags...)
		if err != nil {
			return nil, dedupeDiagnostics(diags), err
		}
		plans = append(plans, *plan)
	}

	route := GenerateRoute(plans)
	return &BulkPlanResult{
		Plans:   plans,
		Route:   route,
		Summary: summarize(plans, route),
	}, dedupeDiagnostics(diags), nil
}

func summarize(plans []PickingPlan, route []RouteEntry) Summary {
	s := Summary{TotalProducts: len(plans), TotalLocations: len(route)}
	for _, p := range plans {
		switch p.Status {
		case StatusSufficient:
			s.SufficientProducts++
		case StatusInsufficient:
			s.InsufficientProducts++
		case StatusNotFound:
			s.NotFoundProducts++
		}
	}
	return s
}

// ValidateDemands rechaza una lista vacía o líneas con cantidad no positiva. Sirve a quien
// necesite validar antes de cargar la foto de stock.
func ValidateDemands(demands []entity.ProductDemand) error {
	if len(demands) == 0 {
		return ErrEmptyDemands
	}
	for i, d := range demands {
		if !d.RequestedQuantity.IsPositive() {
			return fmt.Errorf("%w (línea %d, código %q, cantidad %s)",
				ErrNonPositiveQuantity, i+1, d.ProductCode, d.RequestedQuantity.String())
		}
	}
	return nil
}

// BaseCodes códigos base distintos de las demandas, en orden de aparición.
func BaseCodes(demands []entity.ProductDemand) []string {
	seen := make(map[string]struct{}, len(demands))
	codes := make([]string, 0, len(demands))
	for _, d := range demands {
		base := ParseMultiplier(d.ProductCode).BaseCode
		key := normalizeCode(base)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		codes = append(codes, base)
	}
	return codes
}
