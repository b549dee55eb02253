// Package csvload lee exportaciones CSV del WMS (stock por ubicación y demandas) para
// planificar sin base de datos.
package csvload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-picking/internal/domain/entity"
)

// Encoding juego de caracteres del archivo.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf8"
	EncodingLatin1      Encoding = "latin1"
	EncodingWindows1252 Encoding = "windows1252"
)

// ErrEmptyFile el archivo no trae ni cabecera.
var ErrEmptyFile = errors.New("csv vacío")

// ParseEncoding acepta los alias habituales ("utf-8", "iso-8859-1", "cp1252").
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf8", "utf-8":
		return EncodingUTF8, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	case "windows1252", "windows-1252", "cp1252":
		return EncodingWindows1252, nil
	}
	return "", fmt.Errorf("codificación no soportada: %q", s)
}

func (e Encoding) decoder() encoding.Encoding {
	switch e {
	case EncodingLatin1:
		return charmap.ISO8859_1
	case EncodingWindows1252:
		return charmap.Windows1252
	}
	return unicode.UTF8
}

// Loader lee los CSV con la codificación y separador dados. Un BOM UTF-8 al inicio
// manda sobre la codificación configurada.
type Loader struct {
	enc   Encoding
	comma rune
}

// NewLoader construye el lector. comma 0 = ','.
func NewLoader(enc Encoding, comma rune) *Loader {
	if comma == 0 {
		comma = ','
	}
	return &Loader{enc: enc, comma: comma}
}

var (
	stockRequired  = []string{"id", "code", "location"}
	demandRequired = []string{"product_code", "quantity"}
	unitRequired   = []string{"code"}
)

// LoadStockFile abre path y delega en LoadStock.
func (l *Loader) LoadStockFile(path string) ([]entity.StockRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir stock %s: %w", path, err)
	}
	defer f.Close()
	return l.LoadStock(f)
}

// LoadDemandsFile abre path y delega en LoadDemands.
func (l *Loader) LoadDemandsFile(path string) ([]entity.ProductDemand, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir demandas %s: %w", path, err)
	}
	defer f.Close()
	return l.LoadDemands(f)
}

// LoadStock columnas obligatorias: id, code, location. Opcionales: lot, manufacture_date,
// created_at, level1_quantity, level1_rate, level2_quantity, level2_rate, level3_quantity.
// Las cantidades negativas se cargan tal cual; el motor las diagnostica.
func (l *Loader) LoadStock(r io.Reader) ([]entity.StockRecord, error) {
	var out []entity.StockRecord
	err := l.each(r, stockRequired, func(row rowReader) error {
		rec := entity.StockRecord{
			ID:       row.str("id"),
			Code:     row.str("code"),
			Location: row.str("location"),
			Lot:      row.str("lot"),
		}
		if rec.ID == "" {
			return fmt.Errorf("id vacío")
		}
		var err error
		if rec.ManufactureDate, err = row.date("manufacture_date"); err != nil {
			return err
		}
		if rec.CreatedAt, err = row.date("created_at"); err != nil {
			return err
		}
		fields := []struct {
			col string
			dst *decimal.Decimal
		}{
			{"level1_quantity", &rec.Level1Quantity},
			{"level1_rate", &rec.Level1Rate},
			{"level2_quantity", &rec.Level2Quantity},
			{"level2_rate", &rec.Level2Rate},
			{"level3_quantity", &rec.Level3Quantity},
		}
		for _, f := range fields {
			if *f.dst, err = row.dec(f.col); err != nil {
				return err
			}
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// LoadDemands columnas obligatorias: product_code, quantity. Opcional: product_name.
// La validación de cantidades la hace el motor (con el número de línea de la demanda).
func (l *Loader) LoadDemands(r io.Reader) ([]entity.ProductDemand, error) {
	var out []entity.ProductDemand
	err := l.each(r, demandRequired, func(row rowReader) error {
		qty, err := row.dec("quantity")
		if err != nil {
			return err
		}
		out = append(out, entity.ProductDemand{
			ProductCode:       row.str("product_code"),
			ProductName:       row.str("product_name"),
			RequestedQuantity: qty,
		})
		return nil
	})
	return out, err
}

// LoadUnitsFile abre path y delega en LoadUnits.
func (l *Loader) LoadUnitsFile(path string) ([]entity.ProductUnit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir tasas %s: %w", path, err)
	}
	defer f.Close()
	return l.LoadUnits(f)
}

// LoadUnits tasas maestras: code, level1_rate, level2_rate.
func (l *Loader) LoadUnits(r io.Reader) ([]entity.ProductUnit, error) {
	var out []entity.ProductUnit
	err := l.each(r, unitRequired, func(row rowReader) error {
		u := entity.ProductUnit{Code: row.str("code")}
		var err error
		if u.Level1Rate, err = row.dec("level1_rate"); err != nil {
			return err
		}
		if u.Level2Rate, err = row.dec("level2_rate"); err != nil {
			return err
		}
		out = append(out, u)
		return nil
	})
	return out, err
}

func (l *Loader) each(r io.Reader, required []string, fn func(rowReader) error) error {
	decoded := transform.NewReader(r, unicode.BOMOverride(l.enc.decoder().NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.Comma = l.comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return ErrEmptyFile
	}
	if err != nil {
		return fmt.Errorf("leer cabecera: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("cabecera sin columna %q (obligatorias: %v, recibidas: %v)", col, required, header)
		}
	}

	// Las filas se numeran por línea física: un campo entre comillas puede ocupar varias.
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return fmt.Errorf("fila %d: %w", pe.StartLine, err)
			}
			return err
		}
		if blank(record) {
			continue
		}
		if err := fn(rowReader{index: index, record: record}); err != nil {
			line, _ := reader.FieldPos(0)
			return fmt.Errorf("fila %d: %w", line, err)
		}
	}
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

type rowReader struct {
	index  map[string]int
	record []string
}

func (r rowReader) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

// dec vacío = 0. Acepta coma decimal ("12,5") si no hay punto.
func (r rowReader) dec(col string) (decimal.Decimal, error) {
	s := r.str(col)
	if s == "" {
		return decimal.Zero, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("columna %s: número inválido %q", col, r.str(col))
	}
	return v, nil
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", time.RFC3339, "2006-01-02 15:04:05"}

// date vacío = sin fecha.
func (r rowReader) date(col string) (*time.Time, error) {
	s := r.str(col)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("columna %s: fecha inválida %q", col, s)
}
