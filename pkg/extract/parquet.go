package extract

import (
	"strings"

	"github.com/apache/arrow-go/v18/parquet/file"
)

// extractParquet reads row/column facts from the parquet footer. The
// embedded schema makes a data scan unnecessary.
func (e *Extractor) extractParquet(rec *Record, path string) {
	r, err := file.OpenParquetFile(path, false)
	if err != nil {
		rec.ParquetError = err.Error()
		return
	}
	defer r.Close()

	rows := r.NumRows()
	schema := r.MetaData().Schema
	columnCount := schema.NumColumns()

	names := make([]string, 0, columnCount)
	types := make(map[string]string, columnCount)
	for i := 0; i < columnCount; i++ {
		col := schema.Column(i)
		names = append(names, col.Name())
		types[col.Name()] = strings.ToLower(col.PhysicalType().String())
	}

	rec.RowCount = &rows
	rec.ColumnCount = &columnCount
	rec.ColumnNames = names
	rec.DataTypes = types
}
