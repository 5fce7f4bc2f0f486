package extract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string) {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()

	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]any{"id", "name"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]any{1, "alice"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A3", &[]any{2, "bob"}))

	_, err := wb.NewSheet("Empty")
	require.NoError(t, err)

	require.NoError(t, wb.SaveAs(path))
}

func TestExtractXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	writeWorkbook(t, path)

	rec := testExtractor().Extract(path)

	assert.True(t, rec.Success())
	assert.Empty(t, rec.ExcelError)
	require.NotNil(t, rec.SheetCount)
	assert.Equal(t, 2, *rec.SheetCount)
	assert.Contains(t, rec.SheetNames, "Sheet1")
	assert.Contains(t, rec.SheetNames, "Empty")

	sheet, ok := rec.SheetsInfo["Sheet1"]
	require.True(t, ok)
	assert.Equal(t, int64(2), sheet.RowCount)
	assert.Equal(t, 2, sheet.ColumnCount)
	assert.Equal(t, []string{"id", "name"}, sheet.ColumnNames)
	assert.Equal(t, "int64", sheet.DataTypes["id"])
	assert.Equal(t, "string", sheet.DataTypes["name"])

	empty, ok := rec.SheetsInfo["Empty"]
	require.True(t, ok)
	assert.Equal(t, int64(0), empty.RowCount)
}

func TestExtractLegacyXLSDegrades(t *testing.T) {
	path := writeFile(t, t.TempDir(), "legacy.xls", "\xd0\xcf\x11\xe0 not a real workbook")

	rec := testExtractor().Extract(path)

	assert.True(t, rec.Success())
	assert.NotEmpty(t, rec.ExcelError)
	assert.Nil(t, rec.SheetCount)
}
