// Package pdf genera la hoja de picking impresa que lleva el operario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hoja de picking + referencia │ QR de la referencia │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / completos / parciales / sin stock      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECORRIDO: # | Ubicación | Código | Producto | Lote | Cant  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FALTANTES: productos con stock insuficiente o sin stock     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	apppicking "github.com/jhoicas/Inventario-picking/internal/application/picking"
	"github.com/jhoicas/Inventario-picking/internal/domain/picking"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ apppicking.RouteSheetGenerator = (*RouteSheetGenerator)(nil)

// RouteSheetGenerator implementa picking.RouteSheetGenerator usando Maroto v2.
type RouteSheetGenerator struct{}

// NewRouteSheetGenerator construye el generador.
func NewRouteSheetGenerator() *RouteSheetGenerator { return &RouteSheetGenerator{} }

// GenerateRouteSheet genera el PDF y devuelve sus bytes.
func (g *RouteSheetGenerator) GenerateRouteSheet(_ context.Context, sheet apppicking.RouteSheet) ([]byte, error) {
	if sheet.Result == nil {
		return nil, fmt.Errorf("pdf: plan vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de picking "+sheet.Reference, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(sheet.Result.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(routeHeaderRow())
	m.AddRows(routeRows(sheet.Result.Route)...)

	if missing := shortageRows(sheet.Result.Plans); len(missing) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorAlert, Thickness: 0.3}))
		m.AddRows(missing...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título y referencia (izq), QR de la referencia para escanear en el muelle (der).
func headerRow(sheet apppicking.RouteSheet) core.Row {
	return row.New(30).Add(
		col.New(9).Add(
			text.New("HOJA DE PICKING", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
			text.New("Referencia: "+sheet.Reference, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 11,
			}),
			text.New("Generada: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 18, Color: colorGray,
			}),
			text.New("Empresa: "+sheet.CompanyID, props.Text{
				Size: 8, Top: 23, Color: colorGray,
			}),
		),
		col.New(3).Add(code.NewQr(sheet.Reference, props.Rect{
			Percent: 95,
			Center:  true,
		})),
	)
}

func summaryRow(s picking.Summary) core.Row {
	cell := func(label string, v int) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", v), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 5,
			}),
		)
	}
	return row.New(12).Add(
		cell("Productos", s.TotalProducts),
		cell("Completos", s.SufficientProducts),
		cell("Parciales", s.InsufficientProducts),
		cell("Sin stock", s.NotFoundProducts),
		cell("Paradas", s.TotalLocations),
		col.New(2),
	)
}

func routeHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Ubicación", 2, align.Left),
		h("Código", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Lote", 2, align.Left),
		h("Cantidad", 1, align.Right),
		h("OK", 1, align.Center),
	)
}

// routeRows: una fila por parada, en el orden del recorrido.
func routeRows(route []picking.RouteEntry) []core.Row {
	rows := make([]core.Row, 0, len(route))
	for _, e := range route {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", e.Sequence),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(e.Location,
				props.Text{Style: fontstyle.Bold, Size: 9, Top: 1, Left: 1})),
			col.New(2).Add(text.New(e.ProductCode,
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(truncate(e.ProductName, 40),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(e.Lot, "—"),
				props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(formatQuantity(e.Quantity),
				props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New("[  ]",
				props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return rows
}

// shortageRows lista los productos que no se completan con el stock actual.
func shortageRows(plans []picking.PickingPlan) []core.Row {
	var rows []core.Row
	for _, p := range plans {
		if p.Status == picking.StatusSufficient {
			continue
		}
		if len(rows) == 0 {
			rows = append(rows, row.New(6).Add(col.New(12).Add(
				text.New("FALTANTES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 1}),
			)))
		}
		status := "sin stock"
		if p.Status == picking.StatusInsufficient {
			status = "parcial " + p.Percentage.StringFixed(0) + "%"
		}
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(p.OriginalCode, props.Text{Size: 8, Top: 0.5})),
			col.New(5).Add(text.New(truncate(p.ProductName, 50), props.Text{Size: 8, Top: 0.5})),
			col.New(2).Add(text.New(
				formatQuantity(p.TotalAvailable)+" / "+formatQuantity(p.TotalNeeded),
				props.Text{Size: 8, Align: align.Right, Top: 0.5})),
			col.New(2).Add(text.New(status,
				props.Text{Size: 8, Align: align.Right, Top: 0.5, Color: colorAlert})),
		))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// formatQuantity separa miles con punto y decimales con coma.
// Ej: 25000 → "25.000", 1234.5 → "1.234,5"
func formatQuantity(q decimal.Decimal) string {
	s := q.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := sign + string(buf)
	if hasFrac {
		out += "," + frac
	}
	return out
}
