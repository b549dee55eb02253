package repository

import (
	"context"

	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
)

// ProductUnitRepository puerto de lectura de las tasas maestras de conversión.
type ProductUnitRepository interface {
	ListByCodes(ctx context.Context, companyID string, codes []string) ([]entity.ProductUnit, error)
}
