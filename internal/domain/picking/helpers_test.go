package picking_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("fecha inválida %q: %v", s, err)
	}
	return &v
}

// piezas crea un registro con cantidad solo en nivel 3.
func piezas(id, code, location string, qty int64) entity.StockRecord {
	return entity.StockRecord{
		ID:             id,
		Code:           code,
		Location:       location,
		Level3Quantity: d(qty),
	}
}

func demanda(code string, qty int64) entity.ProductDemand {
	return entity.ProductDemand{ProductCode: code, ProductName: "Producto " + code, RequestedQuantity: d(qty)}
}
