package repository

import (
	"context"

	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
)

// StockRecordRepository define el puerto para leer la foto de stock por ubicación y
// aplicar descuentos confirmados (DIP).
type StockRecordRepository interface {
	// ListByCodes devuelve los registros de la empresa cuyo código coincide (sin distinguir
	// mayúsculas) con alguno de codes. Es la foto de lectura que consume el motor.
	ListByCodes(ctx context.Context, companyID string, codes []string) ([]entity.StockRecord, error)
	GetByID(ctx context.Context, companyID, id string) (*entity.StockRecord, error)
	// UpdateLevelsIfUnchanged escribe next solo si la fila conserva las cantidades de prev
	// (compare-and-set). Devuelve false si otra operación la modificó antes.
	UpdateLevelsIfUnchanged(ctx context.Context, prev, next *entity.StockRecord) (bool, error)
}
