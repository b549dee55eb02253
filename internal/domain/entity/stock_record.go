package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa una existencia física de un código en una ubicación de bodega.
// Las cantidades usan una jerarquía de tres niveles (ej. caja → paquete → unidad);
// Level1Rate y Level2Rate indican cuántas unidades base contiene una unidad de ese nivel.
type StockRecord struct {
	ID              string
	CompanyID       string
	Code            string // puede venir vacío
	Location        string // formato esperado: zona + posición / nivel, ej. "A12/3"
	Lot             string // vacío = sin lote
	ManufactureDate *time.Time
	CreatedAt       *time.Time
	Level1Quantity  decimal.Decimal
	Level1Rate      decimal.Decimal
	Level2Quantity  decimal.Decimal
	Level2Rate      decimal.Decimal
	Level3Quantity  decimal.Decimal
}
