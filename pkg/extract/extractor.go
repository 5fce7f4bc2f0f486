package extract

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// sampleRows is how many data rows are read to infer column names and
// types. Row counts are always exact and come from a full scan.
const sampleRows = 5

// Extractor produces a Record for a single file. It never returns an
// error: a failure is captured inside the record so that one bad file
// cannot abort a batch.
type Extractor struct {
	log *slog.Logger
}

// New creates an Extractor logging to the given logger.
func New(log *slog.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract gathers filesystem facts, a content checksum and
// format-specific structure for path. If the file cannot be stat'ed the
// returned record carries only file_path, error and extraction_time.
func (e *Extractor) Extract(path string) Record {
	now := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		e.log.Error("failed to extract metadata", "file", path, "error", err)
		return Record{FilePath: path, Error: err.Error(), ExtractionTime: now}
	}

	rec := Record{
		FilePath:       path,
		FileName:       filepath.Base(path),
		FileSize:       info.Size(),
		FileExtension:  strings.ToLower(filepath.Ext(path)),
		CreatedTime:    createdTime(info),
		ModifiedTime:   info.ModTime(),
		ExtractionTime: now,
	}

	sum, err := checksumFile(path)
	if err != nil {
		// Checksum failure leaves the field empty; the record is
		// still usable for everything else.
		e.log.Error("failed to calculate checksum", "file", path, "error", err)
	} else {
		rec.Checksum = sum
	}

	switch rec.FileExtension {
	case ".csv", ".tsv":
		e.extractCSV(&rec, path)
	case ".xlsx", ".xls":
		e.extractExcel(&rec, path)
	case ".json":
		e.extractJSON(&rec, path)
	case ".parquet":
		e.extractParquet(&rec, path)
	}

	e.log.Info("extracted metadata", "file", rec.FileName)
	return rec
}
