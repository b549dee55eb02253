package picking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-picking/internal/application/dto"
	"github.com/jhoicas/Inventario-picking/internal/domain"
	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
	"github.com/jhoicas/Inventario-picking/internal/domain/picking"
	"github.com/jhoicas/Inventario-picking/internal/domain/repository"
	"github.com/jhoicas/Inventario-picking/pkg/logger"
)

// PlanUseCase calcula planes de picking sobre la foto actual del stock de la empresa.
// No descuenta nada: el resultado es orientativo y se confirma con ConfirmUseCase.
type PlanUseCase struct {
	stockRepo repository.StockRecordRepository
	unitRepo  repository.ProductUnitRepository
	sheet     RouteSheetGenerator
	fallback  picking.UnitRates
	log       *logger.Logger
	now       func() time.Time
}

// NewPlanUseCase construye el caso de uso. fallback son las tasas de respaldo configuradas
// (cero = sin respaldo).
func NewPlanUseCase(
	stockRepo repository.StockRecordRepository,
	unitRepo repository.ProductUnitRepository,
	sheet RouteSheetGenerator,
	fallback picking.UnitRates,
	log *logger.Logger,
) *PlanUseCase {
	return &PlanUseCase{
		stockRepo: stockRepo,
		unitRepo:  unitRepo,
		sheet:     sheet,
		fallback:  fallback,
		log:       log,
		now:       time.Now,
	}
}

// PlanBulk calcula el plan de todas las demandas, el recorrido unificado y el resumen.
func (uc *PlanUseCase) PlanBulk(ctx context.Context, companyID string, in dto.BulkPlanRequest) (*dto.BulkPlanResponse, error) {
	res, diags, err := uc.planBulk(ctx, companyID, toDemands(in.Demands))
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("reference", in.Reference).
		Int("products", res.Summary.TotalProducts).
		Int("sufficient", res.Summary.SufficientProducts).
		Int("insufficient", res.Summary.InsufficientProducts).
		Int("not_found", res.Summary.NotFoundProducts).
		Int("locations", res.Summary.TotalLocations).
		Msg("plan de picking calculado")
	return ToBulkPlanResponse(in.Reference, res, diags), nil
}

// PlanSingle calcula el plan de una sola demanda.
func (uc *PlanUseCase) PlanSingle(ctx context.Context, companyID string, in dto.DemandRequest) (*dto.SinglePlanResponse, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	demand := toDemand(in)
	if err := picking.ValidateDemands([]entity.ProductDemand{demand}); err != nil {
		return nil, err
	}
	opts, snapshot, err := uc.loadSnapshot(ctx, companyID, []entity.ProductDemand{demand})
	if err != nil {
		return nil, err
	}
	plan, diags, err := picking.PlanDemand(demand, snapshot, opts)
	if err != nil {
		return nil, err
	}
	uc.logDiagnostics(companyID, diags)
	return &dto.SinglePlanResponse{
		Plan:        toPlanResponse(plan),
		Diagnostics: toDiagnosticResponses(diags),
	}, nil
}

// RouteSheet calcula el plan del lote y devuelve la hoja de picking en PDF.
// Si no llega referencia se genera una para poder rastrear la hoja impresa.
func (uc *PlanUseCase) RouteSheet(ctx context.Context, companyID string, in dto.BulkPlanRequest) ([]byte, string, error) {
	res, _, err := uc.planBulk(ctx, companyID, toDemands(in.Demands))
	if err != nil {
		return nil, "", err
	}
	reference := in.Reference
	if reference == "" {
		reference = uuid.New().String()
	}
	pdf, err := uc.sheet.GenerateRouteSheet(ctx, RouteSheet{
		Reference:   reference,
		CompanyID:   companyID,
		GeneratedAt: uc.now(),
		Result:      res,
	})
	if err != nil {
		return nil, "", fmt.Errorf("hoja de picking: %w", err)
	}
	return pdf, reference, nil
}

func (uc *PlanUseCase) planBulk(ctx context.Context, companyID string, demands []entity.ProductDemand) (*picking.BulkPlanResult, []picking.Diagnostic, error) {
	if companyID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	// Validar antes de consultar la BD
	if err := picking.ValidateDemands(demands); err != nil {
		return nil, nil, err
	}
	opts, snapshot, err := uc.loadSnapshot(ctx, companyID, demands)
	if err != nil {
		return nil, nil, err
	}
	res, diags, err := picking.BulkPlan(demands, snapshot, opts)
	if err != nil {
		return nil, nil, err
	}
	uc.logDiagnostics(companyID, diags)
	return res, diags, nil
}

// loadSnapshot lee solo los registros y tasas de los códigos base pedidos.
// El catálogo de tasas vive lo que dura esta llamada.
func (uc *PlanUseCase) loadSnapshot(ctx context.Context, companyID string, demands []entity.ProductDemand) (picking.Options, []entity.StockRecord, error) {
	codes := picking.BaseCodes(demands)
	if len(codes) == 0 {
		return picking.Options{Fallback: uc.fallback}, nil, nil
	}
	snapshot, err := uc.stockRepo.ListByCodes(ctx, companyID, codes)
	if err != nil {
		return picking.Options{}, nil, err
	}
	units, err := uc.unitRepo.ListByCodes(ctx, companyID, codes)
	if err != nil {
		return picking.Options{}, nil, err
	}
	return picking.Options{
		Fallback: uc.fallback,
		Catalog:  picking.NewRateCatalog(units),
	}, snapshot, nil
}

func (uc *PlanUseCase) logDiagnostics(companyID string, diags []picking.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	log := uc.log.Child(map[string]any{"company_id": companyID})
	for _, d := range diags {
		log.Warn().
			Str("kind", string(d.Kind)).
			Str("stock_record_id", d.StockRecordID).
			Msg(d.Message)
	}
	counts := picking.CountByKind(diags)
	ev := log.Warn().Int("total", len(diags))
	for _, k := range picking.SortedKinds(counts) {
		ev = ev.Int(string(k), counts[k])
	}
	ev.Msg("diagnósticos de calidad de datos en el plan")
}
