package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductUnit datos maestros de conversión de unidades por código.
type ProductUnit struct {
	CompanyID  string
	Code       string
	Level1Rate decimal.Decimal // unidades base por unidad de nivel 1
	Level2Rate decimal.Decimal // unidades base por unidad de nivel 2
	UpdatedAt  time.Time
}
