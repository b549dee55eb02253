package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-picking/internal/domain"
	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
	"github.com/jhoicas/Inventario-picking/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo registros de stock por ubicación sobre PostgreSQL (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

const stockRecordColumns = `
	id, company_id, COALESCE(code, ''), COALESCE(location, ''), COALESCE(lot, ''),
	manufacture_date, created_at,
	level1_quantity, level1_rate, level2_quantity, level2_rate, level3_quantity`

func scanStockRecord(row pgx.Row) (entity.StockRecord, error) {
	var r entity.StockRecord
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.Code, &r.Location, &r.Lot,
		&r.ManufactureDate, &r.CreatedAt,
		&r.Level1Quantity, &r.Level1Rate, &r.Level2Quantity, &r.Level2Rate, &r.Level3Quantity,
	)
	return r, err
}

// ListByCodes compara el código normalizado (mayúsculas, sin espacios en los extremos),
// igual que el selector del motor.
func (r *StockRecordRepo) ListByCodes(ctx context.Context, companyID string, codes []string) ([]entity.StockRecord, error) {
	keys := normalizedCodes(codes)
	if len(keys) == 0 {
		return []entity.StockRecord{}, nil
	}
	query := `SELECT ` + stockRecordColumns + `
		FROM stock_records
		WHERE company_id = $1 AND upper(btrim(code)) = ANY($2)
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, companyID, keys)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()

	var list []entity.StockRecord
	for rows.Next() {
		rec, err := scanStockRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	return list, nil
}

// GetByID devuelve nil, nil si el registro no existe en la empresa.
// Un id que no es UUID se rechaza como ErrInvalidInput sin consultar la base.
func (r *StockRecordRepo) GetByID(ctx context.Context, companyID, id string) (*entity.StockRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: stock_record_id %q no es un UUID", domain.ErrInvalidInput, id)
	}
	query := `SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE company_id = $1 AND id = $2`
	rec, err := scanStockRecord(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return &rec, nil
}

// UpdateLevelsIfUnchanged actualiza solo si las tres cantidades siguen siendo las de prev.
func (r *StockRecordRepo) UpdateLevelsIfUnchanged(ctx context.Context, prev, next *entity.StockRecord) (bool, error) {
	query := `
		UPDATE stock_records
		SET level1_quantity = $3, level2_quantity = $4, level3_quantity = $5, updated_at = now()
		WHERE company_id = $1 AND id = $2
		  AND level1_quantity = $6 AND level2_quantity = $7 AND level3_quantity = $8`
	tag, err := r.q.Exec(ctx, query,
		prev.CompanyID, prev.ID,
		next.Level1Quantity, next.Level2Quantity, next.Level3Quantity,
		prev.Level1Quantity, prev.Level2Quantity, prev.Level3Quantity,
	)
	if err != nil {
		return false, fmt.Errorf("update stock record levels: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func normalizedCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		k := strings.ToUpper(strings.TrimSpace(c))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
