// Package logstore persists the ingestion history and the path-keyed
// metadata table as human-inspectable JSON documents.
package logstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/duynguyendang/dip/pkg/extract"
)

const (
	historyFile  = "ingestion_history.json"
	metadataFile = "ingestion_metadata.json"
)

// Store appends history entries and upserts metadata records under a
// log directory. Every append is a read-modify-write of the whole
// document serialized by an internal mutex; concurrent stores on the
// same directory are not supported.
type Store struct {
	dir string
	log *slog.Logger
	mu  sync.Mutex
}

// New creates the log directory if needed and returns a Store over it.
func New(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// RecordStart appends the session start event.
func (s *Store) RecordStart(sessionID string, filesDetected int) error {
	detected := filesDetected
	err := s.appendEntry(Entry{
		SessionID:     sessionID,
		Timestamp:     time.Now(),
		Event:         EventStart,
		FilesDetected: &detected,
	})
	if err == nil {
		s.log.Info("started ingestion session", "session", sessionID, "files_detected", filesDetected)
	}
	return err
}

// RecordFileOutcome appends a file_processed event and, only on
// success, upserts the record into the metadata table.
func (s *Store) RecordFileOutcome(sessionID, filePath string, metadata extract.Record, success bool) error {
	ok := success
	md := metadata
	err := s.appendEntry(Entry{
		SessionID: sessionID,
		Timestamp: time.Now(),
		Event:     EventFileProcessed,
		FilePath:  filePath,
		Success:   &ok,
		Metadata:  &md,
	})
	if success {
		if serr := s.storeMetadata(metadata); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

// RecordComplete appends the session completion event with final counts.
func (s *Store) RecordComplete(sessionID string, processed, failed int) error {
	p, f := processed, failed
	err := s.appendEntry(Entry{
		SessionID:      sessionID,
		Timestamp:      time.Now(),
		Event:          EventComplete,
		ProcessedCount: &p,
		FailedCount:    &f,
	})
	if err == nil {
		s.log.Info("completed ingestion session", "session", sessionID, "processed", processed, "failed", failed)
	}
	return err
}

// History returns the last limit entries, most-recent-last, or all of
// them when limit is not positive. A missing or unreadable store yields
// an empty slice.
func (s *Store) History(limit int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readHistory()
	if err != nil {
		s.log.Error("failed to retrieve ingestion history", "error", err)
		return []Entry{}
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries
}

// Metadata returns the stored record for path, if any.
func (s *Store) Metadata(path string) (extract.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.readMetadata()
	if err != nil {
		s.log.Error("failed to retrieve metadata", "error", err)
		return extract.Record{}, false
	}
	rec, ok := table[path]
	return rec, ok
}

// AllMetadata returns the whole metadata table keyed by file path.
func (s *Store) AllMetadata() map[string]extract.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.readMetadata()
	if err != nil {
		s.log.Error("failed to retrieve metadata", "error", err)
		return map[string]extract.Record{}
	}
	return table
}

func (s *Store) appendEntry(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readHistory()
	if err != nil {
		// Do not clobber a corrupt history with a fresh one; the
		// entry is dropped and the failure reported.
		s.log.Error("failed to append to ingestion history", "error", err)
		return err
	}
	entries = append(entries, entry)

	if err := writeJSON(filepath.Join(s.dir, historyFile), entries); err != nil {
		s.log.Error("failed to append to ingestion history", "error", err)
		return err
	}
	return nil
}

func (s *Store) storeMetadata(rec extract.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.readMetadata()
	if err != nil {
		s.log.Error("failed to store metadata", "error", err)
		return err
	}
	table[rec.FilePath] = rec

	if err := writeJSON(filepath.Join(s.dir, metadataFile), table); err != nil {
		s.log.Error("failed to store metadata", "error", err)
		return err
	}
	return nil
}

// readHistory loads the full ordered history; callers hold s.mu.
func (s *Store) readHistory() ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, historyFile))
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return entries, nil
}

// readMetadata loads the metadata table; callers hold s.mu.
func (s *Store) readMetadata() (map[string]extract.Record, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, metadataFile))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]extract.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	table := map[string]extract.Record{}
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return table, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
