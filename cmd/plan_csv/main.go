// plan_csv calcula el plan de picking a partir de exportaciones CSV, sin base de datos.
//
// Uso:
//
//	go run ./cmd/plan_csv -stock stock.csv -demands demandas.csv [-units tasas.csv] [-encoding latin1] [-delimiter ';'] \
//	    [-fallback-l1 24 -fallback-l2 6]
//
// Escribe el resultado (planes, recorrido, resumen, diagnósticos) como JSON en stdout.
// Los diagnósticos también se registran en stderr.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	apppicking "github.com/jhoicas/Inventario-picking/internal/application/picking"
	"github.com/jhoicas/Inventario-picking/internal/domain/picking"
	"github.com/jhoicas/Inventario-picking/internal/infrastructure/csvload"
	"github.com/jhoicas/Inventario-picking/pkg/logger"
)

func main() {
	stockPath := flag.String("stock", "", "CSV de stock por ubicación (obligatorio)")
	demandsPath := flag.String("demands", "", "CSV de demandas (obligatorio)")
	unitsPath := flag.String("units", "", "CSV de tasas maestras por código (opcional)")
	encName := flag.String("encoding", "utf8", "codificación de los CSV: utf8, latin1, windows1252")
	delimiter := flag.String("delimiter", ",", "separador de columnas")
	fallbackL1 := flag.String("fallback-l1", "", "tasa de respaldo de nivel 1 (vacío = sin respaldo)")
	fallbackL2 := flag.String("fallback-l2", "", "tasa de respaldo de nivel 2 (vacío = sin respaldo)")
	logLevel := flag.String("log-level", "warn", "nivel de log en stderr")
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: *logLevel, Output: os.Stderr})

	if *stockPath == "" || *demandsPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	enc, err := csvload.ParseEncoding(*encName)
	if err != nil {
		log.Fatal().Err(err).Msg("codificación")
	}
	comma, size := utf8.DecodeRuneInString(*delimiter)
	if size == 0 || size != len(*delimiter) {
		log.Fatal().Str("delimiter", *delimiter).Msg("el separador debe ser un solo carácter")
	}
	fallback, err := parseFallback(*fallbackL1, *fallbackL2)
	if err != nil {
		log.Fatal().Err(err).Msg("tasas de respaldo")
	}

	loader := csvload.NewLoader(enc, comma)
	snapshot, err := loader.LoadStockFile(*stockPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar stock")
	}
	demands, err := loader.LoadDemandsFile(*demandsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar demandas")
	}

	opts := picking.Options{Fallback: fallback}
	if *unitsPath != "" {
		units, err := loader.LoadUnitsFile(*unitsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar tasas")
		}
		opts.Catalog = picking.NewRateCatalog(units)
	}

	res, diags, err := picking.BulkPlan(demands, snapshot, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("calcular plan")
	}
	for _, d := range diags {
		log.Warn().Str("kind", string(d.Kind)).Str("stock_record_id", d.StockRecordID).Msg(d.Message)
	}
	log.Info().
		Int("records", len(snapshot)).
		Int("products", res.Summary.TotalProducts).
		Int("insufficient", res.Summary.InsufficientProducts).
		Int("not_found", res.Summary.NotFoundProducts).
		Int("diagnostics", len(diags)).
		Msg("plan calculado")

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	if err := out.Encode(apppicking.ToBulkPlanResponse("", res, diags)); err != nil {
		fmt.Fprintf(os.Stderr, "escribir JSON: %v\n", err)
		os.Exit(1)
	}
}

func parseFallback(l1, l2 string) (picking.UnitRates, error) {
	var rates picking.UnitRates
	for _, f := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{{"fallback-l1", l1, &rates.Level1}, {"fallback-l2", l2, &rates.Level2}} {
		if f.raw == "" {
			continue
		}
		v, err := decimal.NewFromString(f.raw)
		if err != nil {
			return rates, fmt.Errorf("%s: %w", f.name, err)
		}
		if v.IsNegative() {
			return rates, fmt.Errorf("%s: no puede ser negativo", f.name)
		}
		*f.dst = v
	}
	return rates, nil
}
