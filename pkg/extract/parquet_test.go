package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeParquet(t *testing.T, path string) {
	t.Helper()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String},
	}, nil)

	f, err := os.Create(path)
	require.NoError(t, err)

	w, err := pqarrow.NewFileWriter(schema, f, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	require.NoError(t, err)

	bldr := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer bldr.Release()
	bldr.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	bldr.Field(1).(*array.StringBuilder).AppendValues([]string{"alice", "bob", "carol"}, nil)

	rec := bldr.NewRecord()
	defer rec.Release()
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())
}

func TestExtractParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.parquet")
	writeParquet(t, path)

	rec := testExtractor().Extract(path)

	assert.True(t, rec.Success())
	assert.Empty(t, rec.ParquetError)
	require.NotNil(t, rec.RowCount)
	assert.Equal(t, int64(3), *rec.RowCount)
	require.NotNil(t, rec.ColumnCount)
	assert.Equal(t, 2, *rec.ColumnCount)
	assert.Equal(t, []string{"id", "name"}, rec.ColumnNames)
	assert.Equal(t, "int64", rec.DataTypes["id"])
	assert.Equal(t, "byte_array", rec.DataTypes["name"])
	assert.NotEmpty(t, rec.Checksum)
}
