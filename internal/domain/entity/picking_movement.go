package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PickingMovement historial de una extracción confirmada sobre una ubicación.
// Quantity está en unidades base.
type PickingMovement struct {
	ID            string
	TransactionID string
	CompanyID     string
	StockRecordID string
	Code          string
	Location      string
	Lot           string
	Quantity      decimal.Decimal
	CreatedAt     time.Time
	CreatedBy     string // UserID
}
