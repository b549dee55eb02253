package picking

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-picking/internal/domain"
	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
)

// UnitRates unidades base por unidad de nivel 1 y de nivel 2.
type UnitRates struct {
	Level1 decimal.Decimal
	Level2 decimal.Decimal
}

func (r UnitRates) level(n int) decimal.Decimal {
	if n == 1 {
		return r.Level1
	}
	return r.Level2
}

// RateCatalog tasas maestras por código. La construye el caller para cada lote de cálculo
// (ver NewRateCatalog) y la pasa en Options; el paquete no mantiene cachés propias.
type RateCatalog map[string]UnitRates

// NewRateCatalog indexa las tasas maestras por código normalizado.
// Si dos filas normalizan al mismo código gana la primera.
func NewRateCatalog(units []entity.ProductUnit) RateCatalog {
	c := make(RateCatalog, len(units))
	for _, u := range units {
		key := normalizeCode(u.Code)
		if key == "" {
			continue
		}
		if _, dup := c[key]; dup {
			continue
		}
		c[key] = UnitRates{Level1: u.Level1Rate, Level2: u.Level2Rate}
	}
	return c
}

func (c RateCatalog) lookup(code string) (UnitRates, bool) {
	if len(c) == 0 {
		return UnitRates{}, false
	}
	r, ok := c[normalizeCode(code)]
	return r, ok
}

// Options configuración inyectada por el caller.
// Catalog y Fallback se aplican solo cuando el registro no trae tasa para un nivel con cantidad;
// toda sustitución genera un diagnóstico. Con Fallback en cero el aporte de ese nivel es 0 (también diagnosticado).
type Options struct {
	Fallback UnitRates
	Catalog  RateCatalog
}

// Levels cantidades de los tres niveles de un registro.
type Levels struct {
	Level1 decimal.Decimal
	Level2 decimal.Decimal
	Level3 decimal.Decimal
}

// Total convierte a unidades base con las tasas dadas.
func (l Levels) Total(rates UnitRates) decimal.Decimal {
	return l.Level1.Mul(rates.Level1).
		Add(l.Level2.Mul(rates.Level2)).
		Add(l.Level3)
}

// ResolveBaseQuantity convierte la cantidad de tres niveles de un registro a unidades base:
// l1*r1 + l2*r2 + l3. El resultado nunca es negativo.
func ResolveBaseQuantity(r entity.StockRecord, opts Options) (decimal.Decimal, []Diagnostic) {
	levels, diags := sanitizedLevels(r)
	rates, rateDiags := effectiveRates(r, levels, opts)
	diags = append(diags, rateDiags...)
	return levels.Total(rates), diags
}

// sanitizedLevels lleva a cero las cantidades negativas.
func sanitizedLevels(r entity.StockRecord) (Levels, []Diagnostic) {
	var diags []Diagnostic
	clamp := func(n int, q decimal.Decimal) decimal.Decimal {
		if q.IsNegative() {
			diags = append(diags, Diagnostic{
				Kind:          KindNegativeQuantity,
				StockRecordID: r.ID,
				Message: fmt.Sprintf("registro %s (%s en %s): cantidad de nivel %d negativa (%s), se toma como 0",
					r.ID, r.Code, r.Location, n, q.String()),
			})
			return decimal.Zero
		}
		return q
	}
	return Levels{
		Level1: clamp(1, r.Level1Quantity),
		Level2: clamp(2, r.Level2Quantity),
		Level3: clamp(3, r.Level3Quantity),
	}, diags
}

// effectiveRates resuelve la tasa de cada nivel con cantidad positiva:
// tasa propia del registro → catálogo → respaldo configurado → 0.
func effectiveRates(r entity.StockRecord, levels Levels, opts Options) (UnitRates, []Diagnostic) {
	var diags []Diagnostic
	resolve := func(n int, own, qty decimal.Decimal) decimal.Decimal {
		if own.IsPositive() || !qty.IsPositive() {
			return own
		}
		if rates, ok := opts.Catalog.lookup(r.Code); ok {
			if v := rates.level(n); v.IsPositive() {
				diags = append(diags, Diagnostic{
					Kind:          KindCatalogRate,
					StockRecordID: r.ID,
					Message: fmt.Sprintf("registro %s (%s en %s): tasa de nivel %d ausente, se aplica tasa maestra %s",
						r.ID, r.Code, r.Location, n, v.String()),
				})
				return v
			}
		}
		if v := opts.Fallback.level(n); v.IsPositive() {
			diags = append(diags, Diagnostic{
				Kind:          KindFallbackRate,
				StockRecordID: r.ID,
				Message: fmt.Sprintf("registro %s (%s en %s): tasa de nivel %d ausente, se aplica tasa de respaldo %s",
					r.ID, r.Code, r.Location, n, v.String()),
			})
			return v
		}
		diags = append(diags, Diagnostic{
			Kind:          KindMissingRate,
			StockRecordID: r.ID,
			Message: fmt.Sprintf("registro %s (%s en %s): tasa de nivel %d ausente y sin respaldo configurado, %s unidades no se cuentan",
				r.ID, r.Code, r.Location, n, qty.String()),
		})
		return decimal.Zero
	}
	return UnitRates{
		Level1: resolve(1, r.Level1Rate, levels.Level1),
		Level2: resolve(2, r.Level2Rate, levels.Level2),
	}, diags
}

// DeductBaseUnits descuenta qty unidades base de un registro y devuelve los nuevos niveles.
// Consume primero unidades sueltas (nivel 3), luego abre unidades de nivel 2 y por último de
// nivel 1; el sobrante de una unidad abierta vuelve a los niveles inferiores.
func DeductBaseUnits(r entity.StockRecord, qty decimal.Decimal, opts Options) (Levels, []Diagnostic, error) {
	if !qty.IsPositive() {
		return Levels{}, nil, ErrNonPositiveQuantity
	}
	levels, diags := sanitizedLevels(r)
	rates, rateDiags := effectiveRates(r, levels, opts)
	diags = append(diags, rateDiags...)

	if qty.GreaterThan(levels.Total(rates)) {
		return Levels{}, diags, fmt.Errorf("%w: registro %s tiene %s, se piden %s",
			domain.ErrInsufficientStock, r.ID, levels.Total(rates).String(), qty.String())
	}

	need := qty
	take := decimal.Min(levels.Level3, need)
	levels.Level3 = levels.Level3.Sub(take)
	need = need.Sub(take)

	if need.IsPositive() && rates.Level2.IsPositive() && levels.Level2.IsPositive() {
		boxes := decimal.Min(need.Div(rates.Level2).Ceil(), levels.Level2)
		opened := boxes.Mul(rates.Level2)
		levels.Level2 = levels.Level2.Sub(boxes)
		take = decimal.Min(opened, need)
		levels.Level3 = levels.Level3.Add(opened.Sub(take))
		need = need.Sub(take)
	}

	if need.IsPositive() && rates.Level1.IsPositive() && levels.Level1.IsPositive() {
		cases := decimal.Min(need.Div(rates.Level1).Ceil(), levels.Level1)
		opened := cases.Mul(rates.Level1)
		levels.Level1 = levels.Level1.Sub(cases)
		take = decimal.Min(opened, need)
		leftover := opened.Sub(take)
		need = need.Sub(take)
		if rates.Level2.IsPositive() {
			boxes := leftover.Div(rates.Level2).Floor()
			levels.Level2 = levels.Level2.Add(boxes)
			leftover = leftover.Sub(boxes.Mul(rates.Level2))
		}
		levels.Level3 = levels.Level3.Add(leftover)
	}

	if need.IsPositive() {
		return Levels{}, diags, fmt.Errorf("%w: registro %s no permite descontar %s",
			domain.ErrInsufficientStock, r.ID, qty.String())
	}
	return levels, diags, nil
}
