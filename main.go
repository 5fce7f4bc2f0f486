package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/duynguyendang/dip/internal/config"
	"github.com/duynguyendang/dip/pkg/detector"
	"github.com/duynguyendang/dip/pkg/extract"
	"github.com/duynguyendang/dip/pkg/logstore"
	"github.com/duynguyendang/dip/pkg/pipeline"
	"github.com/duynguyendang/dip/pkg/server"
)

var (
	cfgFile     string
	watchDirs   []string
	logDir      string
	noRecursive bool
	workers     int
	port        int
)

var rootCmd = &cobra.Command{
	Use:   "dip",
	Short: "Data ingestion pipeline",
	Long:  `Scans watched directories for data files, extracts structural metadata and records every session in an append-only history.`,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion cycle and print the summary",
	RunE:  runIngest,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to yaml config file")
	rootCmd.PersistentFlags().StringSliceVar(&watchDirs, "dirs", nil, "directories to scan for files")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory for logs and metadata")

	ingestCmd.Flags().BoolVar(&noRecursive, "no-recursive", false, "disable recursive directory scanning")
	ingestCmd.Flags().IntVar(&workers, "workers", 0, "parallel extraction workers (default from config)")

	serveCmd.Flags().IntVar(&port, "port", 0, "HTTP listen port (default from config)")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the config file, env and any flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}
	if len(watchDirs) > 0 {
		cfg.WatchDirectories = watchDirs
	}
	if logDir != "" {
		cfg.LogDirectory = logDir
	}
	if cmd.Flags().Changed("workers") && workers > 0 {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("port") && port > 0 {
		cfg.Port = port
	}
	if noRecursive {
		cfg.Recursive = false
	}
	return cfg, nil
}

// buildPipeline wires the detector, extractor and log store together.
func buildPipeline(cfg config.Config, log *slog.Logger) (*pipeline.Pipeline, *logstore.Store, error) {
	store, err := logstore.New(cfg.LogDirectory, log)
	if err != nil {
		return nil, nil, err
	}
	det := detector.New(cfg.WatchDirectories, log)
	ext := extract.New(log)
	return pipeline.New(det, ext, store, log, cfg.Workers), store, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, cleanup := config.SetupLogger(cfg.LogDirectory, config.ParseLogLevel(cfg.LogLevel))
	defer cleanup()

	pipe, _, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}

	summary := pipe.Run(cfg.Recursive)
	printSummary(summary)

	if summary.Error != "" {
		return fmt.Errorf("ingestion failed: %s", summary.Error)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, cleanup := config.SetupLogger(cfg.LogDirectory, config.ParseLogLevel(cfg.LogLevel))
	defer cleanup()

	pipe, store, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}

	uploadDir := detector.DefaultWatchDirectory
	if len(cfg.WatchDirectories) > 0 {
		uploadDir = cfg.WatchDirectories[0]
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload directory: %w", err)
	}

	srv := server.NewServer(pipe, store, uploadDir, log)
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("starting REST API server", "addr", addr, "upload_dir", uploadDir)
	return srv.Run(addr)
}

func printSummary(summary pipeline.Summary) {
	line := strings.Repeat("=", 50)
	fmt.Println()
	fmt.Println(line)
	fmt.Println("INGESTION SUMMARY")
	fmt.Println(line)
	fmt.Printf("Session ID: %s\n", summary.SessionID)
	if summary.Error != "" {
		fmt.Printf("Error: %s\n", summary.Error)
	}
	fmt.Printf("Total Files: %d\n", summary.TotalFiles)
	fmt.Printf("Successfully Processed: %d\n", summary.ProcessedCount)
	fmt.Printf("Failed: %d\n", summary.FailedCount)
	fmt.Println(line)
}
