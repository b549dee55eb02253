package picking

import (
	"github.com/jhoicas/Inventario-picking/internal/application/dto"
	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
	"github.com/jhoicas/Inventario-picking/internal/domain/picking"
)

func toDemands(in []dto.DemandRequest) []entity.ProductDemand {
	out := make([]entity.ProductDemand, 0, len(in))
	for _, d := range in {
		out = append(out, toDemand(d))
	}
	return out
}

func toDemand(d dto.DemandRequest) entity.ProductDemand {
	return entity.ProductDemand{
		ProductCode:       d.ProductCode,
		ProductName:       d.ProductName,
		RequestedQuantity: d.Quantity,
	}
}

// ToBulkPlanResponse arma la respuesta pública de un lote. La usan también las herramientas
// de línea de comandos para producir el mismo JSON que la API.
func ToBulkPlanResponse(reference string, res *picking.BulkPlanResult, diags []picking.Diagnostic) *dto.BulkPlanResponse {
	plans := make([]dto.PickingPlanResponse, 0, len(res.Plans))
	for i := range res.Plans {
		plans = append(plans, toPlanResponse(&res.Plans[i]))
	}
	route := make([]dto.RouteEntryResponse, 0, len(res.Route))
	for _, r := range res.Route {
		route = append(route, dto.RouteEntryResponse{
			Sequence:      r.Sequence,
			Location:      r.Location,
			Zone:          r.Zone,
			Position:      r.Position,
			Level:         r.Level,
			ProductCode:   r.ProductCode,
			BaseCode:      r.BaseCode,
			ProductName:   r.ProductName,
			Lot:           r.Lot,
			StockRecordID: r.StockRecordID,
			Quantity:      r.Quantity,
		})
	}
	return &dto.BulkPlanResponse{
		Reference: reference,
		Plans:     plans,
		Route:     route,
		Summary: dto.PlanSummaryResponse{
			TotalProducts:        res.Summary.TotalProducts,
			SufficientProducts:   res.Summary.SufficientProducts,
			InsufficientProducts: res.Summary.InsufficientProducts,
			NotFoundProducts:     res.Summary.NotFoundProducts,
			TotalLocations:       res.Summary.TotalLocations,
		},
		Diagnostics: toDiagnosticResponses(diags),
	}
}

func toPlanResponse(p *picking.PickingPlan) dto.PickingPlanResponse {
	locations := make([]dto.PickingLocationResponse, 0, len(p.Locations))
	for _, l := range p.Locations {
		locations = append(locations, dto.PickingLocationResponse{
			StockRecordID:   l.StockRecordID,
			Location:        l.Location,
			Zone:            l.Zone,
			Position:        l.Position,
			Level:           l.Level,
			Lot:             l.Lot,
			ManufactureDate: l.ManufactureDate,
			Available:       l.Available,
			ToPick:          l.ToPick,
			Remaining:       l.Remaining,
		})
	}
	return dto.PickingPlanResponse{
		OriginalCode:     p.OriginalCode,
		BaseCode:         p.BaseCode,
		Multiplier:       p.Multiplier,
		ProductName:      p.ProductName,
		OriginalQuantity: p.OriginalQuantity,
		TotalNeeded:      p.TotalNeeded,
		TotalAvailable:   p.TotalAvailable,
		Status:           string(p.Status),
		Percentage:       p.Percentage,
		Locations:        locations,
	}
}

func toDiagnosticResponses(diags []picking.Diagnostic) []dto.DiagnosticResponse {
	out := make([]dto.DiagnosticResponse, 0, len(diags))
	for _, d := range diags {
		out = append(out, dto.DiagnosticResponse{
			Kind:          string(d.Kind),
			StockRecordID: d.StockRecordID,
			Message:       d.Message,
		})
	}
	return out
}
