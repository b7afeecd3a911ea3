package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				row.AddCell().SetString(cellData)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestXLSXSource(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"lon", "lat", "level"},
			{"-97.5", "35.4", "3"},
			{"-98.1", "36.0", "1"},
		},
	})

	src, err := NewXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, []string{"lon", "lat", "level"}, src.Header())

	require.True(t, src.Next())
	rec := src.Record()
	assert.Equal(t, 0, rec.Row())
	v, ok := rec.Field("level")
	require.True(t, ok)
	assert.Equal(t, "3", v)

	require.True(t, src.Next())
	assert.False(t, src.Next())
	assert.NoError(t, src.Err())
}

func TestXLSXSource_SheetByName(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Ignore": {{"x"}},
		"Data":   {{"a", "b"}, {"1", "2"}},
	})

	src, err := NewXLSX(path, XLSXOptions{SheetName: "Data"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, src.Header())
	require.True(t, src.Next())
	v, _ := src.Record().Field("b")
	assert.Equal(t, "2", v)
}

func TestXLSXSource_SheetNotFound(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Sheet1": {{"a"}}})

	_, err := NewXLSX(path, XLSXOptions{SheetName: "Nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "Nope" not found`)
}

func TestXLSXSource_IndexOutOfRange(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Sheet1": {{"a"}}})

	_, err := NewXLSX(path, XLSXOptions{SheetIndex: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
