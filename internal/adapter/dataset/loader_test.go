package dataset

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/streetlight-dashboard/internal/config"
	"github.com/couchcryptid/streetlight-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func defaultOptions() Options {
	return Options{
		Delimiter: ',',
		Columns: config.Columns{
			Year:      "AÑO",
			Month:     "Mes",
			Asset:     "Farola",
			Latitude:  "Latitud",
			Longitude: "Longitud",
		},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_CSV(t *testing.T) {
	path := writeFile(t, "hurtos.csv", "\ufeffAÑO,Mes,Farola,Latitud,Longitud\n"+
		"2022,Enero,3,4.65,-74.05\n"+
		"2022,Febrero,5,,\n"+
		",,,,\n"+
		"2023,Enero,2,4.71,-74.11\n"+
		"2023,Marzo,1,4.70,\n")

	ds, err := Load(path, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []int{2022, 2023}, ds.Years())
	assert.Equal(t, domain.Selection{2022}, ds.DefaultSelection())
	assert.True(t, ds.HasCoordinates())
	assert.Equal(t, path, ds.Source())

	first := ds.Row(0)
	assert.Equal(t, 2022, first.Year)
	assert.Equal(t, "Enero", first.Month)
	assert.Equal(t, 3.0, first.Assets)
	assert.Equal(t, "3", first.AssetLabel)
	require.NotNil(t, first.Geo)
	assert.Equal(t, domain.Geo{Lat: 4.65, Lon: -74.05}, *first.Geo)
	assert.Equal(t, 2, first.Line)

	assert.Nil(t, ds.Row(1).Geo, "empty coordinates are dropped")
	assert.Nil(t, ds.Row(3).Geo, "partial pairs are dropped")
	assert.Equal(t, 5, ds.Row(2).Line)
}

func TestLoad_HeaderMatchingIgnoresCaseAndAccents(t *testing.T) {
	path := writeFile(t, "hurtos.csv", " ano ,MES,farola,LATITUD,longitud\n2024,Mayo,7,4.6,-74.1\n")

	ds, err := Load(path, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2024, ds.Row(0).Year)
	assert.NotNil(t, ds.Row(0).Geo)
}

func TestLoad_WithoutCoordinateColumns(t *testing.T) {
	path := writeFile(t, "hurtos.csv", "AÑO,Mes,Farola\n2022,Enero,1\n")

	ds, err := Load(path, defaultOptions())
	require.NoError(t, err)
	assert.False(t, ds.HasCoordinates())
	assert.Nil(t, ds.Row(0).Geo)
}

func TestLoad_OnlyOneCoordinateColumn(t *testing.T) {
	path := writeFile(t, "hurtos.csv", "AÑO,Mes,Farola,Latitud\n2022,Enero,1,4.6\n")

	ds, err := Load(path, defaultOptions())
	require.NoError(t, err)
	assert.False(t, ds.HasCoordinates())
}

func TestLoad_YearWithSpreadsheetSuffix(t *testing.T) {
	path := writeFile(t, "hurtos.csv", "AÑO,Mes,Farola\n2023.0,Enero,1\n")

	ds, err := Load(path, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{2023}, ds.Years())
}

func TestLoad_NullValues(t *testing.T) {
	path := writeFile(t, "hurtos.csv", "AÑO,Mes,Farola,Latitud,Longitud\n"+
		"2022,Enero,NaN,nan,-74.1\n"+
		"2022,Enero,,4.6,NaN\n")

	ds, err := Load(path, defaultOptions())
	require.NoError(t, err)
	for i := range ds.Len() {
		assert.Equal(t, 0.0, ds.Row(i).Assets)
		assert.Nil(t, ds.Row(i).Geo)
	}
}

func TestLoad_OutOfRangeCoordinatesDropped(t *testing.T) {
	path := writeFile(t, "hurtos.csv", "AÑO,Mes,Farola,Latitud,Longitud\n2022,Enero,1,-74.1,4.6\n2022,Enero,1,91,200\n")

	ds, err := Load(path, defaultOptions())
	require.NoError(t, err)
	assert.NotNil(t, ds.Row(0).Geo)
	assert.Nil(t, ds.Row(1).Geo)
}

func TestLoad_SemicolonWithDecimalComma(t *testing.T) {
	path := writeFile(t, "hurtos.csv", "AÑO;Mes;Farola;Latitud;Longitud\n2022;Enero;2,5;4,6097;-74,0817\n")
	opts := defaultOptions()
	opts.Delimiter = ';'

	ds, err := Load(path, opts)
	require.NoError(t, err)

	r := ds.Row(0)
	assert.Equal(t, 2.5, r.Assets)
	require.NotNil(t, r.Geo)
	assert.Equal(t, domain.Geo{Lat: 4.6097, Lon: -74.0817}, *r.Geo)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"empty file", "", "empty"},
		{"missing year column", "Mes,Farola\nEnero,1\n", `"AÑO"`},
		{"missing asset column", "AÑO,Mes\n2022,Enero\n", `"Farola"`},
		{"bad year", "AÑO,Mes,Farola\n2022,Enero,1\ndos mil,Enero,1\n", "line 3"},
		{"empty year", "AÑO,Mes,Farola\n,Enero,1\n", "line 2"},
		{"bad asset count", "AÑO,Mes,Farola\n2022,Enero,muchas\n", "Farola"},
		{"unbalanced quote", "AÑO,Mes,Farola\n2022,\"Enero,1\n", "csv"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tc.content)
			_, err := Load(path, defaultOptions())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_MissingColumnIsSentinel(t *testing.T) {
	path := writeFile(t, "bad.csv", "Mes,Farola\nEnero,1\n")
	_, err := Load(path, defaultOptions())
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), defaultOptions())
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hurtos.xlsx")

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Hurtos")
	require.NoError(t, err)
	for _, r := range [][]string{
		{"AÑO", "Mes", "Farola", "Latitud", "Longitud"},
		{"2024", "Junio", "4", "4,65", "-74,05"},
		{"", "", "", "", ""},
		{"2025", "Julio", "1", "", ""},
	} {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}
	require.NoError(t, f.Save(path))

	ds, err := Load(path, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []int{2024, 2025}, ds.Years())
	require.NotNil(t, ds.Row(0).Geo)
	assert.Equal(t, domain.Geo{Lat: 4.65, Lon: -74.05}, *ds.Row(0).Geo)
	assert.Nil(t, ds.Row(1).Geo)
}

func TestLoad_XLSXFormattedNumbersKeepStoredValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hurtos.xlsx")

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Hurtos")
	require.NoError(t, err)
	header := sheet.AddRow()
	for _, h := range []string{"AÑO", "Mes", "Farola", "Latitud", "Longitud"} {
		header.AddCell().SetString(h)
	}
	r := sheet.AddRow()
	r.AddCell().SetFloatWithFormat(2022, "#,##0")
	r.AddCell().SetString("Enero")
	r.AddCell().SetFloatWithFormat(1234, "#,##0")
	r.AddCell().SetFloatWithFormat(4.609712, "0.00")
	r.AddCell().SetFloatWithFormat(-74.081749, "0.00")
	require.NoError(t, f.Save(path))

	ds, err := Load(path, defaultOptions())
	require.NoError(t, err)

	got := ds.Row(0)
	assert.Equal(t, 2022, got.Year)
	assert.Equal(t, 1234.0, got.Assets)
	require.NotNil(t, got.Geo)
	assert.Equal(t, domain.Geo{Lat: 4.609712, Lon: -74.081749}, *got.Geo)
}

func TestLoad_XLSXUnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hurtos.xlsx")
	f := xlsx.NewFile()
	_, err := f.AddSheet("Hurtos")
	require.NoError(t, err)
	require.NoError(t, f.Save(path))

	opts := defaultOptions()
	opts.Sheet = "Otra"
	_, err = Load(path, opts)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), `"Otra"`))
}
