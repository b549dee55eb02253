package picking

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
	"github.com/jhoicas/Inventario-picking/internal/domain/repository"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// memStock repositorio de stock en memoria. Las copias evitan que el caso de uso modifique
// la foto del test por accidente.
type memStock struct {
	mu      sync.Mutex
	records []entity.StockRecord
	listErr error
	calls   int
	// onUpdate se ejecuta antes del compare-and-set; simula una escritura concurrente.
	onUpdate func(m *memStock)
}

func (m *memStock) ListByCodes(_ context.Context, companyID string, codes []string) ([]entity.StockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []entity.StockRecord
	for _, r := range m.records {
		if r.CompanyID != companyID {
			continue
		}
		for _, c := range codes {
			if strings.EqualFold(strings.TrimSpace(r.Code), strings.TrimSpace(c)) {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (m *memStock) GetByID(_ context.Context, companyID, id string) (*entity.StockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id && r.CompanyID == companyID {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStock) UpdateLevelsIfUnchanged(_ context.Context, prev, next *entity.StockRecord) (bool, error) {
	if m.onUpdate != nil {
		m.onUpdate(m)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID != prev.ID {
			continue
		}
		if !r.Level1Quantity.Equal(prev.Level1Quantity) ||
			!r.Level2Quantity.Equal(prev.Level2Quantity) ||
			!r.Level3Quantity.Equal(prev.Level3Quantity) {
			return false, nil
		}
		m.records[i].Level1Quantity = next.Level1Quantity
		m.records[i].Level2Quantity = next.Level2Quantity
		m.records[i].Level3Quantity = next.Level3Quantity
		return true, nil
	}
	return false, nil
}

func (m *memStock) byID(id string) entity.StockRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			return r
		}
	}
	return entity.StockRecord{}
}

type memUnits struct {
	units []entity.ProductUnit
}

func (m *memUnits) ListByCodes(_ context.Context, companyID string, codes []string) ([]entity.ProductUnit, error) {
	var out []entity.ProductUnit
	for _, u := range m.units {
		if u.CompanyID != companyID {
			continue
		}
		for _, c := range codes {
			if strings.EqualFold(u.Code, c) {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

type memMovements struct {
	created []entity.PickingMovement
	err     error
}

func (m *memMovements) Create(_ context.Context, mov *entity.PickingMovement) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *mov)
	return nil
}

// memTx emula la transacción: si fn falla restaura el stock y descarta los movimientos.
type memTx struct {
	stock *memStock
	movs  *memMovements
}

func (t *memTx) Run(ctx context.Context, fn func(repository.StockRecordRepository, repository.PickingMovementRepository) error) error {
	t.stock.mu.Lock()
	snapshot := append([]entity.StockRecord(nil), t.stock.records...)
	t.stock.mu.Unlock()
	pending := &memMovements{err: t.movs.err}

	if err := fn(t.stock, pending); err != nil {
		t.stock.mu.Lock()
		t.stock.records = snapshot
		t.stock.mu.Unlock()
		return err
	}
	t.movs.created = append(t.movs.created, pending.created...)
	return nil
}

type fakeSheet struct {
	got RouteSheet
	err error
}

func (f *fakeSheet) GenerateRouteSheet(_ context.Context, s RouteSheet) ([]byte, error) {
	f.got = s
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

var errDB = errors.New("conexión perdida")
