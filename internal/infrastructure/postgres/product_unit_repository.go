package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
	"github.com/jhoicas/Inventario-picking/internal/domain/repository"
)

var _ repository.ProductUnitRepository = (*ProductUnitRepo)(nil)

// ProductUnitRepo tasas maestras de conversión por código.
type ProductUnitRepo struct {
	q Querier
}

// NewProductUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductUnitRepository(q Querier) *ProductUnitRepo {
	return &ProductUnitRepo{q: q}
}

// ListByCodes devuelve las tasas de los códigos pedidos (comparación sin mayúsculas).
// Ordenado por código normalizado y, dentro de él, la fila más reciente primero.
func (r *ProductUnitRepo) ListByCodes(ctx context.Context, companyID string, codes []string) ([]entity.ProductUnit, error) {
	keys := normalizedCodes(codes)
	if len(keys) == 0 {
		return []entity.ProductUnit{}, nil
	}
	query := `
		SELECT company_id, code, level1_rate, level2_rate, updated_at
		FROM product_units
		WHERE company_id = $1 AND upper(btrim(code)) = ANY($2)
		ORDER BY upper(btrim(code)), updated_at DESC, code`
	rows, err := r.q.Query(ctx, query, companyID, keys)
	if err != nil {
		return nil, fmt.Errorf("list product units: %w", err)
	}
	defer rows.Close()

	var list []entity.ProductUnit
	for rows.Next() {
		var u entity.ProductUnit
		if err := rows.Scan(&u.CompanyID, &u.Code, &u.Level1Rate, &u.Level2Rate, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
