package picking_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
	"github.com/jhoicas/Inventario-picking/internal/domain/picking"
)

func snapshotBodega(t *testing.T) []entity.StockRecord {
	viejo := piezas("s1", "P1", "B1/1", 10)
	viejo.ManufactureDate = date(t, "2024-01-01")
	nuevo := piezas("s2", "P1", "A5/2", 10)
	nuevo.ManufactureDate = date(t, "2024-03-01")
	cajas := entity.StockRecord{
		ID: "s3", Code: "L3-8G", Location: "A1/1",
		Level1Quantity: d(1), Level1Rate: d(24), Level3Quantity: d(6),
	}
	roto := piezas("s4", "P2", "??", 8)
	return []entity.StockRecord{viejo, nuevo, cajas, roto}
}

func TestBulkPlan_ResumenYRecorrido(t *testing.T) {
	demands := []entity.ProductDemand{
		demanda("P1", 12),
		demanda("L3-8GX6", 6),
		demanda("P2", 1),
		demanda("NADA", 3),
	}

	res, diags, err := picking.BulkPlan(demands, snapshotBodega(t), picking.Options{})
	require.NoError(t, err)

	require.Len(t, res.Plans, 4)
	assert.Equal(t, "P1", res.Plans[0].OriginalCode, "los planes respetan el orden de las demandas")
	assert.Equal(t, picking.StatusSufficient, res.Plans[0].Status)
	assert.Equal(t, picking.StatusInsufficient, res.Plans[1].Status) // 36 pedidas, 24+6 disponibles
	assert.True(t, res.Plans[1].TotalAvailable.Equal(d(30)))
	assert.Equal(t, picking.StatusNotFound, res.Plans[2].Status)
	assert.Equal(t, picking.StatusNotFound, res.Plans[3].Status)

	assert.Equal(t, picking.Summary{
		TotalProducts:        4,
		SufficientProducts:   1,
		InsufficientProducts: 1,
		NotFoundProducts:     2,
		TotalLocations:       3,
	}, res.Summary)

	require.Len(t, res.Route, 3)
	assert.Equal(t, []string{"A1/1", "A5/2", "B1/1"},
		[]string{res.Route[0].Location, res.Route[1].Location, res.Route[2].Location})

	require.Len(t, diags, 1)
	assert.Equal(t, picking.KindUnparseableLocation, diags[0].Kind)
}

func TestBulkPlan_ErroresDeLlamada(t *testing.T) {
	_, _, err := picking.BulkPlan(nil, snapshotBodega(t), picking.Options{})
	assert.ErrorIs(t, err, picking.ErrEmptyDemands)

	_, _, err = picking.BulkPlan([]entity.ProductDemand{demanda("P1", 1), demanda("P2", 0)}, snapshotBodega(t), picking.Options{})
	assert.ErrorIs(t, err, picking.ErrNonPositiveQuantity)
	assert.Contains(t, err.Error(), "línea 2")
}

func TestBulkPlan_DiagnosticosSinRepetir(t *testing.T) {
	snapshot := []entity.StockRecord{{ID: "s1", Code: "P1", Location: "A1/1", Level1Quantity: d(1), Level3Quantity: d(2)}}
	demands := []entity.ProductDemand{demanda("P1", 1), demanda("P1X2", 1)}

	_, diags, err := picking.BulkPlan(demands, snapshot, picking.Options{Fallback: picking.UnitRates{Level1: d(12)}})
	require.NoError(t, err)
	require.Len(t, diags, 1, "el mismo registro coincide con dos demandas")
	assert.Equal(t, picking.KindFallbackRate, diags[0].Kind)
}

func TestBulkPlan_Determinista(t *testing.T) {
	demands := []entity.ProductDemand{demanda("P1", 15), demanda("L3-8G", 7), demanda("P1X2", 3)}

	first, d1, err := picking.BulkPlan(demands, snapshotBodega(t), picking.Options{})
	require.NoError(t, err)
	second, d2, err := picking.BulkPlan(demands, snapshotBodega(t), picking.Options{})
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, d1, d2)
}

func TestBaseCodes_SinRepetidos(t *testing.T) {
	codes := picking.BaseCodes([]entity.ProductDemand{
		demanda("L3-8GX6", 1), demanda("l3-8g", 1), demanda("", 1), demanda("P2", 1),
	})
	assert.Equal(t, []string{"L3-8G", "P2"}, codes)
}
