package extract

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
)

// extractCSV fills tabular facts for csv/tsv files. Column names and
// types come from a small sample; the row count is exact and requires a
// full scan of the file.
func (e *Extractor) extractCSV(rec *Record, path string) {
	f, err := os.Open(path)
	if err != nil {
		rec.CSVError = err.Error()
		return
	}
	defer f.Close()

	r := csv.NewReader(f)
	if rec.FileExtension == ".tsv" {
		r.Comma = '\t'
	}
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		rec.CSVError = err.Error()
		return
	}

	var sample [][]string
	for len(sample) < sampleRows {
		row, err := r.Read()
		if err != nil {
			break
		}
		sample = append(sample, row)
	}

	rows, err := countDataRows(path)
	if err != nil {
		rec.CSVError = err.Error()
		return
	}

	columnCount := len(header)
	rec.RowCount = &rows
	rec.ColumnCount = &columnCount
	rec.ColumnNames = header
	rec.DataTypes = inferColumnTypes(header, sample)
}

// countDataRows counts the lines of the whole file minus the header.
// A trailing line without a final newline still counts.
func countDataRows(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, 64*1024)
	var lines, total int64
	var last byte
	for {
		n, err := f.Read(buf)
		if n > 0 {
			total += int64(n)
			lines += int64(bytes.Count(buf[:n], []byte{'\n'}))
			last = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if total > 0 && last != '\n' {
		lines++
	}
	if lines == 0 {
		return 0, nil
	}
	return lines - 1, nil
}

// inferColumnTypes maps each column name to the narrowest type that
// fits every sampled value.
func inferColumnTypes(header []string, sample [][]string) map[string]string {
	types := make(map[string]string, len(header))
	for i, name := range header {
		var values []string
		for _, row := range sample {
			if i < len(row) {
				values = append(values, row[i])
			}
		}
		types[name] = inferType(values)
	}
	return types
}

func inferType(values []string) string {
	if len(values) == 0 {
		return "string"
	}
	isInt, isFloat, isBool := true, true, true
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			isFloat = false
		}
		if _, err := strconv.ParseBool(v); err != nil {
			isBool = false
		}
	}
	switch {
	case isInt:
		return "int64"
	case isFloat:
		return "float64"
	case isBool:
		return "bool"
	}
	return "string"
}
