package logstore

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/dip/pkg/extract"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func record(path string) extract.Record {
	return extract.Record{
		FilePath:       path,
		FileName:       filepath.Base(path),
		Checksum:       "abc123",
		ExtractionTime: time.Now(),
	}
}

func TestAppendOrdering(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.RecordStart("sess1", 2))
	require.NoError(t, s.RecordFileOutcome("sess1", "a.csv", record("a.csv"), true))
	require.NoError(t, s.RecordFileOutcome("sess1", "b.csv", record("b.csv"), false))
	require.NoError(t, s.RecordComplete("sess1", 1, 1))

	entries := s.History(0)
	require.Len(t, entries, 4)
	assert.Equal(t, EventStart, entries[0].Event)
	assert.Equal(t, EventFileProcessed, entries[1].Event)
	assert.Equal(t, "a.csv", entries[1].FilePath)
	assert.Equal(t, EventFileProcessed, entries[2].Event)
	assert.Equal(t, EventComplete, entries[3].Event)
	require.NotNil(t, entries[0].FilesDetected)
	assert.Equal(t, 2, *entries[0].FilesDetected)
	require.NotNil(t, entries[3].ProcessedCount)
	assert.Equal(t, 1, *entries[3].ProcessedCount)
}

func TestHistoryLimit(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.RecordStart("sess1", 0))
	require.NoError(t, s.RecordComplete("sess1", 0, 0))
	require.NoError(t, s.RecordStart("sess2", 0))
	require.NoError(t, s.RecordComplete("sess2", 0, 0))

	entries := s.History(2)
	require.Len(t, entries, 2)
	// Most recent last, and the limit keeps the tail.
	assert.Equal(t, "sess2", entries[0].SessionID)
	assert.Equal(t, EventComplete, entries[1].Event)
}

func TestHistoryMissingStore(t *testing.T) {
	s := testStore(t)
	assert.Empty(t, s.History(10))
}

func TestMetadataUpsertOnlyOnSuccess(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.RecordFileOutcome("sess1", "bad.csv", extract.Record{FilePath: "bad.csv", Error: "boom"}, false))
	_, ok := s.Metadata("bad.csv")
	assert.False(t, ok, "failed extraction must never reach the metadata table")

	require.NoError(t, s.RecordFileOutcome("sess1", "good.csv", record("good.csv"), true))
	rec, ok := s.Metadata("good.csv")
	require.True(t, ok)
	assert.Equal(t, "abc123", rec.Checksum)
}

func TestMetadataLastWriteWins(t *testing.T) {
	s := testStore(t)

	first := record("a.csv")
	require.NoError(t, s.RecordFileOutcome("sess1", "a.csv", first, true))

	second := record("a.csv")
	second.Checksum = "def456"
	require.NoError(t, s.RecordFileOutcome("sess2", "a.csv", second, true))

	rec, ok := s.Metadata("a.csv")
	require.True(t, ok)
	assert.Equal(t, "def456", rec.Checksum)
	assert.Len(t, s.AllMetadata(), 1)
}

func TestCorruptHistoryIsNotClobbered(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	historyPath := filepath.Join(dir, "ingestion_history.json")
	require.NoError(t, os.WriteFile(historyPath, []byte("{not json"), 0o644))

	// Reads degrade to empty, writes fail without destroying the file.
	assert.Empty(t, s.History(0))
	assert.Error(t, s.RecordStart("sess1", 1))

	data, err := os.ReadFile(historyPath)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestAllMetadataEmptyStore(t *testing.T) {
	s := testStore(t)
	assert.Empty(t, s.AllMetadata())
}
