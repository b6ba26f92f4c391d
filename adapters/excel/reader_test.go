package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "samples.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestDataReader_ExcelColumns(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"before", "after"},
		{1.5, 2},
		{"n/a", 3},
		{2.5, 4},
		{3.5, ""},
	})
	reader := NewDataReader(path)

	before, err := reader.NumericColumn("before")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, before)

	xs, ys, err := reader.PairedColumns("before", "after")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, xs)
	assert.Equal(t, []float64{2, 4}, ys)
}

func TestDataReader_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	require.NoError(t, os.WriteFile(path, []byte("price, qty\n10,1\n12,2\nx,3\n"), 0o644))

	data, err := NewDataReader(path).ReadData()
	require.NoError(t, err)
	assert.Equal(t, []string{"price", "qty"}, data.Headers)
	assert.Len(t, data.Rows, 3)

	prices, err := NewDataReader(path).NumericColumn("price")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 12}, prices)
}

func TestDataReader_Errors(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "missing.csv")).ReadData()
	assert.ErrorContains(t, err, "not found")

	path := filepath.Join(t.TempDir(), "short.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0o644))
	_, err = NewDataReader(path).ReadData()
	assert.ErrorContains(t, err, "header row")

	path = filepath.Join(t.TempDir(), "ok.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n1\n"), 0o644))
	_, err = NewDataReader(path).NumericColumn("b")
	assert.ErrorContains(t, err, `column "b" not found`)
}
