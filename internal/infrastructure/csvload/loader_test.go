package csvload_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-picking/internal/infrastructure/csvload"
)

func TestLoadStock(t *testing.T) {
	in := "id,code,location,lot,manufacture_date,level1_quantity,level1_rate,level2_quantity,level2_rate,level3_quantity\n" +
		"r1,L3-8G,A12/3,L-01,2026-01-15,1,24,2,6,5\n" +
		"r2, l3-8g ,B01-1,,15/02/2026,,,,,12\n" +
		",,,,,,,,,\n" +
		"r3,P9,??,,,,,,,-4\n"

	recs, err := csvload.NewLoader(csvload.EncodingUTF8, ',').LoadStock(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	r1 := recs[0]
	assert.Equal(t, "r1", r1.ID)
	assert.Equal(t, "A12/3", r1.Location)
	assert.Equal(t, "L-01", r1.Lot)
	require.NotNil(t, r1.ManufactureDate)
	assert.Equal(t, "2026-01-15", r1.ManufactureDate.Format("2006-01-02"))
	assert.True(t, r1.Level1Rate.Equal(decimal.NewFromInt(24)))
	assert.True(t, r1.Level3Quantity.Equal(decimal.NewFromInt(5)))

	r2 := recs[1]
	assert.Equal(t, "l3-8g", r2.Code, "el código se conserva; la comparación la hace el motor")
	assert.Equal(t, "2026-02-15", r2.ManufactureDate.Format("2006-01-02"))
	assert.Nil(t, r2.CreatedAt)
	assert.True(t, r2.Level1Quantity.IsZero())

	// Datos defectuosos se cargan; el motor los diagnostica
	assert.Equal(t, "??", recs[2].Location)
	assert.True(t, recs[2].Level3Quantity.Equal(decimal.NewFromInt(-4)))
}

func TestLoadStock_ComaDecimalConPuntoYComa(t *testing.T) {
	in := "id;code;location;level3_quantity\nr1;X;A1/1;12,5\n"
	recs, err := csvload.NewLoader(csvload.EncodingUTF8, ';').LoadStock(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Level3Quantity.Equal(decimal.RequireFromString("12.5")))
}

func TestLoadStock_FilaEsLaLineaFisica(t *testing.T) {
	l := csvload.NewLoader(csvload.EncodingUTF8, ',')

	// r1 ocupa las líneas 2 y 3 por el salto dentro de comillas
	in := "id,code,location,level3_quantity\n" +
		"r1,X,\"A1/1\nestante alto\",5\n" +
		"r2,Y,A1/2,muchos\n"
	_, err := l.LoadStock(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 4")

	in = "id,code,location,level3_quantity\n" +
		"r1,X,A1/1,5\n" +
		"\n" +
		"r2,Y,A1/2,muchos\n"
	_, err = l.LoadStock(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 4")
}

func TestLoadStock_Errores(t *testing.T) {
	l := csvload.NewLoader(csvload.EncodingUTF8, ',')

	_, err := l.LoadStock(strings.NewReader(""))
	assert.ErrorIs(t, err, csvload.ErrEmptyFile)

	_, err = l.LoadStock(strings.NewReader("id,code\nr1,X\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location")

	_, err = l.LoadStock(strings.NewReader("id,code,location,level3_quantity\nr1,X,A1/1,muchos\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 2")
	assert.Contains(t, err.Error(), "level3_quantity")

	_, err = l.LoadStock(strings.NewReader("id,code,location,manufacture_date\nr1,X,A1/1,ayer\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fecha inválida")

	_, err = l.LoadStock(strings.NewReader("id,code,location\n,X,A1/1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id vacío")
}

func TestLoadDemands_Latin1(t *testing.T) {
	// "Tornillo cabeza ñ" con ñ en ISO-8859-1 (0xF1)
	var buf bytes.Buffer
	buf.WriteString("product_code,product_name,quantity\nP1,Tornillo cabeza ")
	buf.WriteByte(0xF1)
	buf.WriteString(",3\nP2X6,,1\n")

	demands, err := csvload.NewLoader(csvload.EncodingLatin1, 0).LoadDemands(&buf)
	require.NoError(t, err)
	require.Len(t, demands, 2)
	assert.Equal(t, "Tornillo cabeza ñ", demands[0].ProductName)
	assert.True(t, demands[0].RequestedQuantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "P2X6", demands[1].ProductCode)
}

func TestLoadDemands_BOMManda(t *testing.T) {
	in := "\xEF\xBB\xBFproduct_code,product_name,quantity\nP1,Tuerca ñ,2\n"
	demands, err := csvload.NewLoader(csvload.EncodingLatin1, ',').LoadDemands(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, demands, 1)
	assert.Equal(t, "P1", demands[0].ProductCode)
	assert.Equal(t, "Tuerca ñ", demands[0].ProductName)
}

func TestLoadDemandsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demandas.csv")
	require.NoError(t, os.WriteFile(path, []byte("product_code,quantity\nP1,4\n"), 0o600))

	demands, err := csvload.NewLoader(csvload.EncodingUTF8, ',').LoadDemandsFile(path)
	require.NoError(t, err)
	require.Len(t, demands, 1)

	_, err = csvload.NewLoader(csvload.EncodingUTF8, ',').LoadDemandsFile(filepath.Join(t.TempDir(), "no.csv"))
	assert.Error(t, err)
}

func TestParseEncoding(t *testing.T) {
	for in, want := range map[string]csvload.Encoding{
		"":           csvload.EncodingUTF8,
		"UTF-8":      csvload.EncodingUTF8,
		"latin1":     csvload.EncodingLatin1,
		"ISO-8859-1": csvload.EncodingLatin1,
		"cp1252":     csvload.EncodingWindows1252,
	} {
		got, err := csvload.ParseEncoding(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := csvload.ParseEncoding("shift-jis")
	assert.Error(t, err)
}

func TestLoadUnits(t *testing.T) {
	in := "code,level1_rate,level2_rate\nL3-8G,24,6\nP2,,12\n"
	units, err := csvload.NewLoader(csvload.EncodingUTF8, ',').LoadUnits(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.True(t, units[0].Level1Rate.Equal(decimal.NewFromInt(24)))
	assert.True(t, units[1].Level1Rate.IsZero())
	assert.True(t, units[1].Level2Rate.Equal(decimal.NewFromInt(12)))
}
