package picking

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-picking/internal/application/dto"
	"github.com/jhoicas/Inventario-picking/internal/domain"
	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
	"github.com/jhoicas/Inventario-picking/internal/domain/picking"
	"github.com/jhoicas/Inventario-picking/pkg/logger"
)

const usuario = "user-1"

// cajas: 2 paquetes de 10 más 3 sueltas = 23 unidades base.
func stockConPaquetes() *memStock {
	return &memStock{records: []entity.StockRecord{
		{ID: "r1", CompanyID: empresa, Code: "P1", Location: "A01/1",
			Level2Quantity: d(2), Level2Rate: d(10), Level3Quantity: d(3)},
		{ID: "r2", CompanyID: empresa, Code: "P1", Location: "A02/1", Level3Quantity: d(4)},
	}}
}

func newConfirmUC(stock *memStock, movs *memMovements) *ConfirmUseCase {
	return NewConfirmUseCase(&memTx{stock: stock, movs: movs}, &memUnits{}, picking.UnitRates{}, logger.Nop())
}

func TestConfirm_DescuentaYRegistraMovimiento(t *testing.T) {
	stock := stockConPaquetes()
	movs := &memMovements{}
	uc := newConfirmUC(stock, movs)

	out, err := uc.Confirm(context.Background(), empresa, usuario, dto.ConfirmPickingRequest{
		Reference: "PED-1",
		Lines:     []dto.ConfirmLineRequest{{StockRecordID: "r1", ToPick: d(5), ExpectedAvailable: d(23)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Movements)
	assert.True(t, out.TotalPicked.Equal(d(5)))
	assert.NotEmpty(t, out.TransactionID)

	// 3 sueltas + 2 de un paquete abierto; quedan 8 sueltas y 1 paquete
	r1 := stock.byID("r1")
	assert.True(t, r1.Level2Quantity.Equal(d(1)), "paquetes: %s", r1.Level2Quantity)
	assert.True(t, r1.Level3Quantity.Equal(d(8)), "sueltas: %s", r1.Level3Quantity)

	require.Len(t, movs.created, 1)
	m := movs.created[0]
	assert.Equal(t, out.TransactionID, m.TransactionID)
	assert.Equal(t, "r1", m.StockRecordID)
	assert.Equal(t, "A01/1", m.Location)
	assert.Equal(t, usuario, m.CreatedBy)
	assert.True(t, m.Quantity.Equal(d(5)))
}

func TestConfirm_LogConEmpresaUsuarioYTransaccion(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	uc := NewConfirmUseCase(&memTx{stock: stockConPaquetes(), movs: &memMovements{}}, &memUnits{}, picking.UnitRates{}, log)

	out, err := uc.Confirm(context.Background(), empresa, usuario, dto.ConfirmPickingRequest{
		Reference: "PED-9",
		Lines:     []dto.ConfirmLineRequest{{StockRecordID: "r2", ToPick: d(1), ExpectedAvailable: d(4)}},
	})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "picking confirmado", entry["message"])
	assert.Equal(t, empresa, entry["company_id"])
	assert.Equal(t, usuario, entry["user_id"])
	assert.Equal(t, out.TransactionID, entry["transaction_id"])
	assert.Equal(t, "PED-9", entry["reference"])
}

func TestConfirm_AgrupaLineasDelMismoRegistro(t *testing.T) {
	stock := stockConPaquetes()
	movs := &memMovements{}
	uc := newConfirmUC(stock, movs)

	out, err := uc.Confirm(context.Background(), empresa, usuario, dto.ConfirmPickingRequest{
		Lines: []dto.ConfirmLineRequest{
			{StockRecordID: "r2", ToPick: d(1), ExpectedAvailable: d(4)},
			{StockRecordID: "r2", ToPick: d(2), ExpectedAvailable: d(4)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Movements)
	assert.True(t, stock.byID("r2").Level3Quantity.Equal(d(1)))

	_, err = uc.Confirm(context.Background(), empresa, usuario, dto.ConfirmPickingRequest{
		Lines: []dto.ConfirmLineRequest{
			{StockRecordID: "r2", ToPick: d(1), ExpectedAvailable: d(1)},
			{StockRecordID: "r2", ToPick: d(1), ExpectedAvailable: d(3)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_PlanDesactualizado(t *testing.T) {
	stock := stockConPaquetes()
	movs := &memMovements{}
	uc := newConfirmUC(stock, movs)

	_, err := uc.Confirm(context.Background(), empresa, usuario, dto.ConfirmPickingRequest{
		Lines: []dto.ConfirmLineRequest{
			{StockRecordID: "r1", ToPick: d(5), ExpectedAvailable: d(23)},
			{StockRecordID: "r2", ToPick: d(2), ExpectedAvailable: d(10)},
		},
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	// r1 se había descontado dentro de la tx; el rollback lo deja como estaba
	r1 := stock.byID("r1")
	assert.True(t, r1.Level2Quantity.Equal(d(2)))
	assert.True(t, r1.Level3Quantity.Equal(d(3)))
	assert.Empty(t, movs.created)
}

func TestConfirm_EscrituraConcurrente(t *testing.T) {
	stock := stockConPaquetes()
	stock.onUpdate = func(m *memStock) {
		m.records[0].Level3Quantity = d(0)
	}
	movs := &memMovements{}
	uc := newConfirmUC(stock, movs)

	_, err := uc.Confirm(context.Background(), empresa, usuario, dto.ConfirmPickingRequest{
		Lines: []dto.ConfirmLineRequest{{StockRecordID: "r1", ToPick: d(1), ExpectedAvailable: d(23)}},
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, movs.created)
}

func TestConfirm_ErroresDeEntrada(t *testing.T) {
	tests := []struct {
		name    string
		company string
		user    string
		lines   []dto.ConfirmLineRequest
		want    error
	}{
		{"sin empresa", "", usuario, []dto.ConfirmLineRequest{{StockRecordID: "r1", ToPick: d(1), ExpectedAvailable: d(23)}}, domain.ErrInvalidInput},
		{"sin usuario", empresa, "", []dto.ConfirmLineRequest{{StockRecordID: "r1", ToPick: d(1), ExpectedAvailable: d(23)}}, domain.ErrInvalidInput},
		{"sin líneas", empresa, usuario, nil, domain.ErrInvalidInput},
		{"cantidad cero", empresa, usuario, []dto.ConfirmLineRequest{{StockRecordID: "r1", ToPick: d(0), ExpectedAvailable: d(23)}}, domain.ErrInvalidInput},
		{"sin registro", empresa, usuario, []dto.ConfirmLineRequest{{ToPick: d(1), ExpectedAvailable: d(23)}}, domain.ErrInvalidInput},
		{"más de lo visto", empresa, usuario, []dto.ConfirmLineRequest{{StockRecordID: "r2", ToPick: d(5), ExpectedAvailable: d(4)}}, domain.ErrInsufficientStock},
		{"registro inexistente", empresa, usuario, []dto.ConfirmLineRequest{{StockRecordID: "zz", ToPick: d(1), ExpectedAvailable: d(1)}}, domain.ErrNotFound},
		{"registro de otra empresa", "otra", usuario, []dto.ConfirmLineRequest{{StockRecordID: "r2", ToPick: d(1), ExpectedAvailable: d(4)}}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock := stockConPaquetes()
			movs := &memMovements{}
			uc := newConfirmUC(stock, movs)

			_, err := uc.Confirm(context.Background(), tt.company, tt.user, dto.ConfirmPickingRequest{Lines: tt.lines})
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, movs.created)
		})
	}
}

func TestConfirm_FallaElHistorial(t *testing.T) {
	stock := stockConPaquetes()
	uc := newConfirmUC(stock, &memMovements{err: errDB})

	_, err := uc.Confirm(context.Background(), empresa, usuario, dto.ConfirmPickingRequest{
		Lines: []dto.ConfirmLineRequest{{StockRecordID: "r2", ToPick: d(1), ExpectedAvailable: d(4)}},
	})
	require.ErrorIs(t, err, errDB)
	assert.True(t, stock.byID("r2").Level3Quantity.Equal(d(4)))
}
