package entity

import "github.com/shopspring/decimal"

// ProductDemand una línea de requerimiento. ProductCode puede traer sufijo multiplicador ("L3-8GX6").
// RequestedQuantity está en la unidad nominal de la demanda, antes de aplicar el multiplicador.
type ProductDemand struct {
	ProductCode       string
	ProductName       string // solo para mostrar
	RequestedQuantity decimal.Decimal
}
