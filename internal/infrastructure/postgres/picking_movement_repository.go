package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-picking/internal/domain"
	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
	"github.com/jhoicas/Inventario-picking/internal/domain/repository"
)

var _ repository.PickingMovementRepository = (*PickingMovementRepo)(nil)

// PickingMovementRepo historial de extracciones sobre PostgreSQL (usable con pool o tx).
type PickingMovementRepo struct {
	q Querier
}

// NewPickingMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPickingMovementRepository(q Querier) *PickingMovementRepo {
	return &PickingMovementRepo{q: q}
}

// Create persiste un movimiento confirmado.
func (r *PickingMovementRepo) Create(ctx context.Context, mov *entity.PickingMovement) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO picking_movements
			(id, transaction_id, company_id, stock_record_id, code, location, lot, quantity, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.TransactionID, mov.CompanyID, mov.StockRecordID,
		mov.Code, mov.Location, mov.Lot, mov.Quantity, mov.CreatedAt, mov.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: movimiento %s ya registrado", domain.ErrConflict, mov.ID)
		}
		return fmt.Errorf("create picking movement: %w", err)
	}
	return nil
}
