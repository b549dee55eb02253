package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemandRequest una línea de demanda. product_code puede traer sufijo multiplicador ("L3-8GX6").
type DemandRequest struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// BulkPlanRequest body para POST /api/picking/plan y /api/picking/route-sheet.
type BulkPlanRequest struct {
	Reference string          `json:"reference,omitempty"` // pedido u orden de picking; solo informativo
	Demands   []DemandRequest `json:"demands"`
}

// PickingLocationResponse una línea de extracción dentro de un plan.
type PickingLocationResponse struct {
	StockRecordID   string          `json:"stock_record_id"`
	Location        string          `json:"location"`
	Zone            string          `json:"zone"`
	Position        int             `json:"position"`
	Level           int             `json:"level"`
	Lot             string          `json:"lot,omitempty"`
	ManufactureDate *time.Time      `json:"manufacture_date,omitempty"`
	Available       decimal.Decimal `json:"available"`
	ToPick          decimal.Decimal `json:"to_pick"`
	Remaining       decimal.Decimal `json:"remaining"`
}

// PickingPlanResponse plan de una demanda. Cantidades en unidades base.
type PickingPlanResponse struct {
	OriginalCode     string                    `json:"original_code"`
	BaseCode         string                    `json:"base_code"`
	Multiplier       int                       `json:"multiplier"`
	ProductName      string                    `json:"product_name"`
	OriginalQuantity decimal.Decimal           `json:"original_quantity"`
	TotalNeeded      decimal.Decimal           `json:"total_needed"`
	TotalAvailable   decimal.Decimal           `json:"total_available"`
	Status           string                    `json:"status"` // sufficient | insufficient | not_found
	Percentage       decimal.Decimal           `json:"percentage"`
	Locations        []PickingLocationResponse `json:"locations"`
}

// RouteEntryResponse un paso del recorrido.
type RouteEntryResponse struct {
	Sequence      int             `json:"sequence"`
	Location      string          `json:"location"`
	Zone          string          `json:"zone"`
	Position      int             `json:"position"`
	Level         int             `json:"level"`
	ProductCode   string          `json:"product_code"`
	BaseCode      string          `json:"base_code"`
	ProductName   string          `json:"product_name"`
	Lot           string          `json:"lot,omitempty"`
	StockRecordID string          `json:"stock_record_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// PlanSummaryResponse conteos del lote.
type PlanSummaryResponse struct {
	TotalProducts        int `json:"total_products"`
	SufficientProducts   int `json:"sufficient_products"`
	InsufficientProducts int `json:"insufficient_products"`
	NotFoundProducts     int `json:"not_found_products"`
	TotalLocations       int `json:"total_locations"`
}

// DiagnosticResponse advertencia de calidad de datos.
type DiagnosticResponse struct {
	Kind          string `json:"kind"`
	StockRecordID string `json:"stock_record_id,omitempty"`
	Message       string `json:"message"`
}

// BulkPlanResponse resultado de POST /api/picking/plan.
type BulkPlanResponse struct {
	Reference   string                `json:"reference,omitempty"`
	Plans       []PickingPlanResponse `json:"plans"`
	Route       []RouteEntryResponse  `json:"route"`
	Summary     PlanSummaryResponse   `json:"summary"`
	Diagnostics []DiagnosticResponse  `json:"diagnostics"`
}

// SinglePlanResponse resultado de POST /api/picking/plan/single.
type SinglePlanResponse struct {
	Plan        PickingPlanResponse  `json:"plan"`
	Diagnostics []DiagnosticResponse `json:"diagnostics"`
}

// ConfirmLineRequest una línea del plan a descontar. expected_available es el disponible
// que el plan vio; si el stock cambió desde entonces la confirmación se rechaza.
type ConfirmLineRequest struct {
	StockRecordID     string          `json:"stock_record_id"`
	ToPick            decimal.Decimal `json:"to_pick"`
	ExpectedAvailable decimal.Decimal `json:"expected_available"`
}

// ConfirmPickingRequest body para POST /api/picking/confirm.
type ConfirmPickingRequest struct {
	Reference string               `json:"reference,omitempty"`
	Lines     []ConfirmLineRequest `json:"lines"`
}

// ConfirmPickingResponse resultado de la confirmación.
type ConfirmPickingResponse struct {
	TransactionID string          `json:"transaction_id"`
	Movements     int             `json:"movements"`
	TotalPicked   decimal.Decimal `json:"total_picked"`
}
