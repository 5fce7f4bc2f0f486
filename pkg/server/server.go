package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynguyendang/dip/pkg/logstore"
	"github.com/duynguyendang/dip/pkg/pipeline"
)

// Runner triggers one ingestion run.
type Runner interface {
	Run(recursive bool) pipeline.Summary
}

// Server holds the state for the REST API server.
type Server struct {
	pipeline  Runner
	store     *logstore.Store
	uploadDir string
	log       *slog.Logger
	router    *gin.Engine
}

// NewServer creates a new Server instance. uploadDir is where POST
// /upload payloads land before ingestion picks them up.
func NewServer(pipe Runner, store *logstore.Store, uploadDir string, log *slog.Logger) *Server {
	r := gin.Default()
	s := &Server{
		pipeline:  pipe,
		store:     store,
		uploadDir: uploadDir,
		log:       log,
		router:    r,
	}
	r.Use(corsMiddleware())
	s.setupRoutes()
	return s
}

// Run starts the server on the specified address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.POST("/upload", s.handleUpload)
	s.router.GET("/metadata", s.handleMetadata)
	s.router.GET("/logs", s.handleLogs)
	s.router.POST("/trigger-ingestion", s.handleTrigger)
}

// Health check
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Data Ingestion API is running"})
}

// corsMiddleware allows the browser frontend to call the API directly.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
