package picking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-picking/internal/application/dto"
	"github.com/jhoicas/Inventario-picking/internal/domain"
	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
	"github.com/jhoicas/Inventario-picking/internal/domain/picking"
	"github.com/jhoicas/Inventario-picking/internal/domain/repository"
	"github.com/jhoicas/Inventario-picking/pkg/logger"
)

// ConfirmUseCase aplica un plan de picking sobre el stock vivo. El plan no reserva nada,
// así que cada línea se vuelve a validar: si el disponible cambió desde que se calculó el
// plan, la confirmación completa se rechaza con domain.ErrConflict y se hace Rollback.
type ConfirmUseCase struct {
	txRunner TxRunner
	unitRepo repository.ProductUnitRepository
	fallback picking.UnitRates
	log      *logger.Logger
	now      func() time.Time
}

// NewConfirmUseCase construye el caso de uso.
func NewConfirmUseCase(
	txRunner TxRunner,
	unitRepo repository.ProductUnitRepository,
	fallback picking.UnitRates,
	log *logger.Logger,
) *ConfirmUseCase {
	return &ConfirmUseCase{
		txRunner: txRunner,
		unitRepo: unitRepo,
		fallback: fallback,
		log:      log,
		now:      time.Now,
	}
}

// confirmLine línea agrupada por registro: dos demandas con el mismo código base pueden
// sacar de la misma ubicación.
type confirmLine struct {
	stockRecordID string
	toPick        decimal.Decimal
	expected      decimal.Decimal
}

// Confirm descuenta las líneas en una transacción y guarda el historial de movimientos.
func (uc *ConfirmUseCase) Confirm(ctx context.Context, companyID, userID string, in dto.ConfirmPickingRequest) (*dto.ConfirmPickingResponse, error) {
	if companyID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	lines, err := groupLines(in.Lines)
	if err != nil {
		return nil, err
	}

	txID := uuid.New().String()
	log := uc.log.Child(map[string]any{"company_id": companyID, "user_id": userID, "transaction_id": txID})
	now := uc.now()
	total := decimal.Zero

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.PickingMovementRepository,
	) error {
		records := make([]*entity.StockRecord, len(lines))
		codes := make([]string, 0, len(lines))
		for i, l := range lines {
			rec, err := stockRepo.GetByID(ctx, companyID, l.stockRecordID)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("%w: registro de stock %s", domain.ErrNotFound, l.stockRecordID)
			}
			records[i] = rec
			codes = append(codes, rec.Code)
		}

		units, err := uc.unitRepo.ListByCodes(ctx, companyID, codes)
		if err != nil {
			return err
		}
		opts := picking.Options{Fallback: uc.fallback, Catalog: picking.NewRateCatalog(units)}

		for i, l := range lines {
			rec := records[i]
			available, _ := picking.ResolveBaseQuantity(*rec, opts)
			if !available.Equal(l.expected) {
				return fmt.Errorf("%w: registro %s tiene %s disponibles, el plan esperaba %s",
					domain.ErrConflict, rec.ID, available.String(), l.expected.String())
			}
			levels, diags, err := picking.DeductBaseUnits(*rec, l.toPick, opts)
			if err != nil {
				return err
			}
			for _, d := range diags {
				log.Warn().Str("kind", string(d.Kind)).Str("stock_record_id", d.StockRecordID).Msg(d.Message)
			}

			next := *rec
			next.Level1Quantity = levels.Level1
			next.Level2Quantity = levels.Level2
			next.Level3Quantity = levels.Level3
			ok, err := stockRepo.UpdateLevelsIfUnchanged(ctx, rec, &next)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: registro %s modificado durante la confirmación", domain.ErrConflict, rec.ID)
			}

			mov := &entity.PickingMovement{
				ID:            uuid.New().String(),
				TransactionID: txID,
				CompanyID:     companyID,
				StockRecordID: rec.ID,
				Code:          rec.Code,
				Location:      rec.Location,
				Lot:           rec.Lot,
				Quantity:      l.toPick,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			total = total.Add(l.toPick)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("reference", in.Reference).
		Int("movements", len(lines)).
		Str("total_picked", total.String()).
		Msg("picking confirmado")

	return &dto.ConfirmPickingResponse{
		TransactionID: txID,
		Movements:     len(lines),
		TotalPicked:   total,
	}, nil
}

// groupLines valida y agrupa por registro. Líneas del mismo registro deben traer el mismo
// disponible esperado (salen de la misma foto).
func groupLines(in []dto.ConfirmLineRequest) ([]confirmLine, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: sin líneas para confirmar", domain.ErrInvalidInput)
	}
	index := make(map[string]int, len(in))
	out := make([]confirmLine, 0, len(in))
	for i, l := range in {
		if l.StockRecordID == "" || !l.ToPick.IsPositive() || l.ExpectedAvailable.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d", domain.ErrInvalidInput, i+1)
		}
		if pos, ok := index[l.StockRecordID]; ok {
			if !out[pos].expected.Equal(l.ExpectedAvailable) {
				return nil, fmt.Errorf("%w: línea %d, disponible esperado distinto para %s",
					domain.ErrInvalidInput, i+1, l.StockRecordID)
			}
			out[pos].toPick = out[pos].toPick.Add(l.ToPick)
			continue
		}
		index[l.StockRecordID] = len(out)
		out = append(out, confirmLine{stockRecordID: l.StockRecordID, toPick: l.ToPick, expected: l.ExpectedAvailable})
	}
	for _, l := range out {
		if l.toPick.GreaterThan(l.expected) {
			return nil, fmt.Errorf("%w: se piden %s de %s pero el plan vio %s",
				domain.ErrInsufficientStock, l.toPick.String(), l.stockRecordID, l.expected.String())
		}
	}
	return out, nil
}
