// Package pipeline orchestrates one ingestion run: detect, extract per
// file with isolated failures, record every outcome, summarize.
package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/duynguyendang/dip/pkg/extract"
)

// Detector yields the candidate files for a run.
type Detector interface {
	Detect(recursive bool) ([]string, error)
}

// Extractor produces a metadata record for one file and never fails
// outright; errors are carried inside the record.
type Extractor interface {
	Extract(path string) extract.Record
}

// Recorder is the durable session/metadata log. Its errors are treated
// as non-fatal by the pipeline: a logging failure must not abort the
// run it is recording.
type Recorder interface {
	RecordStart(sessionID string, filesDetected int) error
	RecordFileOutcome(sessionID, filePath string, metadata extract.Record, success bool) error
	RecordComplete(sessionID string, processed, failed int) error
}

// FileResult is one file's outcome inside a run summary.
type FileResult struct {
	FilePath string          `json:"file_path"`
	Success  bool            `json:"success"`
	Metadata *extract.Record `json:"metadata,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Summary is returned to the caller and never persisted as a unit.
// ProcessedCount+FailedCount == TotalFiles unless Error is set, in
// which case all counts are zero.
type Summary struct {
	SessionID      string       `json:"session_id"`
	TotalFiles     int          `json:"total_files"`
	ProcessedCount int          `json:"processed_count"`
	FailedCount    int          `json:"failed_count"`
	Results        []FileResult `json:"results,omitempty"`
	Error          string       `json:"error,omitempty"`
}

// Pipeline wires a detector, an extractor and a recorder into runs.
type Pipeline struct {
	detector  Detector
	extractor Extractor
	store     Recorder
	log       *slog.Logger
	workers   int
}

// New creates a Pipeline. workers bounds parallel extraction; anything
// below 2 means strictly sequential processing.
func New(det Detector, ext Extractor, store Recorder, log *slog.Logger, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{detector: det, extractor: ext, store: store, log: log, workers: workers}
}

// Run executes one ingestion cycle and returns its summary. Detection
// failure aborts the run with zero counts and Error set; per-file
// failures are isolated and only move the failed counter.
func (p *Pipeline) Run(recursive bool) Summary {
	sessionID := newSessionID(time.Now())

	files, err := p.detector.Detect(recursive)
	if err != nil {
		p.log.Error("critical error in ingestion pipeline", "session", sessionID, "error", err)
		return Summary{SessionID: sessionID, Error: err.Error()}
	}

	if err := p.store.RecordStart(sessionID, len(files)); err != nil {
		p.log.Error("failed to record session start", "session", sessionID, "error", err)
	}

	records := p.extractAll(files)

	summary := Summary{SessionID: sessionID, TotalFiles: len(files)}
	for i, file := range files {
		rec := records[i]
		success := rec.Success()

		if err := p.store.RecordFileOutcome(sessionID, file, rec, success); err != nil {
			p.log.Error("failed to record file outcome", "file", file, "error", err)
		}

		result := FileResult{FilePath: file, Success: success, Metadata: &records[i]}
		if success {
			summary.ProcessedCount++
			p.log.Info("successfully processed", "file", filepath.Base(file))
		} else {
			summary.FailedCount++
			result.Error = rec.Error
			p.log.Error("failed to process", "file", filepath.Base(file), "error", rec.Error)
		}
		summary.Results = append(summary.Results, result)
	}

	if err := p.store.RecordComplete(sessionID, summary.ProcessedCount, summary.FailedCount); err != nil {
		p.log.Error("failed to record session completion", "session", sessionID, "error", err)
	}
	return summary
}

// extractAll produces one record per file, in file order. With more
// than one worker, extraction runs concurrently but results keep
// detection order so outcome logging stays sequential.
func (p *Pipeline) extractAll(files []string) []extract.Record {
	records := make([]extract.Record, len(files))

	if p.workers <= 1 || len(files) < 2 {
		for i, file := range files {
			records[i] = p.extractOne(file)
		}
		return records
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, file := range files {
		g.Go(func() error {
			records[i] = p.extractOne(file)
			return nil
		})
	}
	g.Wait()
	return records
}

// extractOne shields the run from anything escaping the extractor; a
// panic becomes a failed record for that file alone.
func (p *Pipeline) extractOne(path string) (rec extract.Record) {
	defer func() {
		if r := recover(); r != nil {
			rec = extract.Record{
				FilePath:       path,
				Error:          fmt.Sprintf("unexpected error processing %s: %v", path, r),
				ExtractionTime: time.Now(),
			}
		}
	}()
	return p.extractor.Extract(path)
}

// newSessionID is unique per run: wall-clock second plus a random
// suffix so rapid sequential or concurrent runs cannot collide.
func newSessionID(now time.Time) string {
	return fmt.Sprintf("ingestion_%s_%s", now.Format("20060102_150405"), uuid.NewString()[:8])
}
