package logstore

import (
	"time"

	"github.com/duynguyendang/dip/pkg/extract"
)

// Event is the kind of a history entry.
type Event string

const (
	EventStart         Event = "ingestion_start"
	EventFileProcessed Event = "file_processed"
	EventComplete      Event = "ingestion_complete"
)

// Entry is one immutable event in the append-only ingestion history.
// Within a session the order is exactly one start, the files in
// detection order, then one complete.
type Entry struct {
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Event     Event     `json:"event"`

	// Start.
	FilesDetected *int `json:"files_detected,omitempty"`

	// FileProcessed.
	FilePath string          `json:"file_path,omitempty"`
	Success  *bool           `json:"success,omitempty"`
	Metadata *extract.Record `json:"metadata,omitempty"`

	// Complete.
	ProcessedCount *int `json:"processed_count,omitempty"`
	FailedCount    *int `json:"failed_count,omitempty"`
}
