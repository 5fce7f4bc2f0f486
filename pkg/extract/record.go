package extract

import "time"

// Record describes one file's filesystem facts, checksum and
// format-specific structure. The JSON field names match the persisted
// metadata store exactly.
type Record struct {
	FilePath       string    `json:"file_path"`
	FileName       string    `json:"file_name,omitempty"`
	FileSize       int64     `json:"file_size,omitempty"`
	FileExtension  string    `json:"file_extension,omitempty"`
	CreatedTime    time.Time `json:"created_time,omitzero"`
	ModifiedTime   time.Time `json:"modified_time,omitzero"`
	Checksum       string    `json:"checksum,omitempty"`
	ExtractionTime time.Time `json:"extraction_time"`

	// Tabular (csv/tsv) and columnar (parquet) facts.
	RowCount    *int64            `json:"row_count,omitempty"`
	ColumnCount *int              `json:"column_count,omitempty"`
	ColumnNames []string          `json:"column_names,omitempty"`
	DataTypes   map[string]string `json:"data_types,omitempty"`

	// Spreadsheet facts.
	SheetCount *int                 `json:"sheet_count,omitempty"`
	SheetNames []string             `json:"sheet_names,omitempty"`
	SheetsInfo map[string]SheetInfo `json:"sheets_info,omitempty"`

	// JSON facts.
	JSONType     string   `json:"json_type,omitempty"`
	RecordCount  *int     `json:"record_count,omitempty"`
	SampleKeys   []string `json:"sample_keys,omitempty"`
	TopLevelKeys []string `json:"top_level_keys,omitempty"`

	// Format-branch failures. A branch error leaves the record
	// successful; only the top-level Error marks a failed extraction.
	CSVError     string `json:"csv_error,omitempty"`
	ExcelError   string `json:"excel_error,omitempty"`
	JSONError    string `json:"json_error,omitempty"`
	ParquetError string `json:"parquet_error,omitempty"`

	// Error is set only when the whole extraction failed (stat, open).
	Error string `json:"error,omitempty"`
}

// SheetInfo holds per-sheet structure for spreadsheet files.
type SheetInfo struct {
	RowCount    int64             `json:"row_count"`
	ColumnCount int               `json:"column_count"`
	ColumnNames []string          `json:"column_names"`
	DataTypes   map[string]string `json:"data_types"`
}

// Success reports whether the extraction produced a usable record.
// Branch errors (csv_error etc.) do not count as failure.
func (r Record) Success() bool {
	return r.Error == ""
}
