package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger creates a dual-output logger: text to stderr at the
// configured level, plus a date-stamped diagnostic file in the log
// directory at debug level. Returns the logger and a cleanup function
// to close the file.
func SetupLogger(logDir string, level slog.Level) (*slog.Logger, func() error) {
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		slog.Error("failed to create log directory, using stderr only", "error", err, "dir", logDir)
		return slog.New(stderrHandler), func() error { return nil }
	}

	name := fmt.Sprintf("ingestion_%s.log", time.Now().Format("20060102"))
	file, err := os.OpenFile(filepath.Join(logDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file, using stderr only", "error", err, "file", name)
		return slog.New(stderrHandler), func() error { return nil }
	}

	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	logger := slog.New(slogmulti.Fanout(stderrHandler, fileHandler))

	cleanup := func() error {
		return file.Close()
	}

	return logger, cleanup
}
