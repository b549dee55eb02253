package picking

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-picking/internal/domain/picking"
	"github.com/jhoicas/Inventario-picking/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la confirmación de un plan sea todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.PickingMovementRepository,
	) error) error
}

// RouteSheet datos para imprimir la hoja de picking de un lote.
type RouteSheet struct {
	Reference   string
	CompanyID   string
	GeneratedAt time.Time
	Result      *picking.BulkPlanResult
}

// RouteSheetGenerator genera la hoja de picking (PDF) para el operario.
type RouteSheetGenerator interface {
	GenerateRouteSheet(ctx context.Context, sheet RouteSheet) ([]byte, error)
}
