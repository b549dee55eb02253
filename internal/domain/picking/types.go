package picking

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanStatus resultado de una demanda. insufficient y not_found no son errores.
type PlanStatus string

const (
	StatusSufficient   PlanStatus = "sufficient"
	StatusInsufficient PlanStatus = "insufficient"
	StatusNotFound     PlanStatus = "not_found"
)

// PickingLocation una línea candidata (o asignada) dentro de un plan.
// Invariante: 0 <= ToPick <= Available y Remaining = Available - ToPick.
type PickingLocation struct {
	StockRecordID   string
	Location        string
	Zone            string
	Position        int
	Level           int
	Available       decimal.Decimal // unidades base en la ubicación
	ToPick          decimal.Decimal // unidades base asignadas aquí
	Remaining       decimal.Decimal
	Lot             string
	ManufactureDate *time.Time
	CreatedAt       *time.Time // fecha de ingreso; solo desempata el orden
}

// PickingPlan resultado por demanda.
type PickingPlan struct {
	OriginalCode     string
	BaseCode         string
	Multiplier       int
	ProductName      string
	OriginalQuantity decimal.Decimal
	TotalNeeded      decimal.Decimal // OriginalQuantity * Multiplier
	TotalAvailable   decimal.Decimal // suma de todas las ubicaciones candidatas, se usen o no
	Status           PlanStatus
	Percentage       decimal.Decimal // [0,100], 2 decimales
	Locations        []PickingLocation // solo las que tienen ToPick > 0
}

// RouteEntry un paso del recorrido de picking.
type RouteEntry struct {
	Sequence      int
	Location      string
	Zone          string
	Position      int
	Level         int
	ProductCode   string // código de la demanda, tal como llegó
	BaseCode      string
	ProductName   string
	Lot           string
	StockRecordID string
	Quantity      decimal.Decimal
}

// Summary conteos del lote.
type Summary struct {
	TotalProducts        int
	SufficientProducts   int
	InsufficientProducts int
	NotFoundProducts     int
	TotalLocations       int
}

// BulkPlanResult planes por demanda (en el orden recibido), recorrido unificado y resumen.
type BulkPlanResult struct {
	Plans   []PickingPlan
	Route   []RouteEntry
	Summary Summary
}
