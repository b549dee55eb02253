package picking

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Código base seguido de X/x y 1 a 3 dígitos al final: "L3-8GX6" → ("L3-8G", 6).
var multiplierPattern = regexp.MustCompile(`^(.+)[Xx]([0-9]{1,3})$`)

// CodeMultiplier resultado de separar el sufijo multiplicador de un código compuesto.
type CodeMultiplier struct {
	BaseCode      string
	Multiplier    int
	HasMultiplier bool
}

// ParseMultiplier separa el código base y el multiplicador. Nunca falla: si no hay sufijo,
// o el sufijo vale 1 o 0, devuelve el código original (sin espacios) con multiplicador 1.
func ParseMultiplier(code string) CodeMultiplier {
	trimmed := strings.TrimSpace(code)
	m := multiplierPattern.FindStringSubmatch(trimmed)
	if m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil && n > 1 {
			return CodeMultiplier{BaseCode: m[1], Multiplier: n, HasMultiplier: true}
		}
	}
	return CodeMultiplier{BaseCode: trimmed, Multiplier: 1}
}

// Apply convierte una cantidad nominal de la demanda a unidades del código base.
func (c CodeMultiplier) Apply(quantity decimal.Decimal) decimal.Decimal {
	if c.Multiplier <= 1 {
		return quantity
	}
	return quantity.Mul(decimal.NewFromInt(int64(c.Multiplier)))
}
