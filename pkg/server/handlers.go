package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/duynguyendang/dip/pkg/common/errors"
)

// defaultLogLimit matches the /logs default when no limit is given.
const defaultLogLimit = 100

// handleUpload saves the multipart payloads into the upload directory
// verbatim, then triggers a non-recursive ingestion run.
func (s *Server) handleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Invalid multipart form", err))
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "No files provided", nil))
		return
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		handleError(c, errors.NewAppError(http.StatusInternalServerError, "Upload directory unavailable", err))
		return
	}

	uploaded := make([]gin.H, 0, len(files))
	for _, fh := range files {
		if fh.Filename == "" {
			continue
		}
		// Base strips any client-supplied directory components.
		dst := filepath.Join(s.uploadDir, filepath.Base(fh.Filename))
		if err := c.SaveUploadedFile(fh, dst); err != nil {
			handleError(c, errors.NewAppError(http.StatusInternalServerError, "Upload failed", err))
			return
		}
		uploaded = append(uploaded, gin.H{
			"filename": fh.Filename,
			"size":     fh.Size,
			"path":     dst,
		})
	}

	results := s.pipeline.Run(false)

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"message":           fmt.Sprintf("Successfully uploaded %d files", len(uploaded)),
		"uploaded_files":    uploaded,
		"ingestion_results": results,
	})
}

// handleMetadata returns the full metadata table, or a single record
// when ?path= names a processed file.
func (s *Server) handleMetadata(c *gin.Context) {
	if path := c.Query("path"); path != "" {
		rec, ok := s.store.Metadata(path)
		if !ok {
			handleError(c, fmt.Errorf("metadata for %s: %w", path, errors.ErrNotFound))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"metadata": rec,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"metadata": s.store.AllMetadata(),
	})
}

// handleLogs returns the last N history entries (?limit=N, default 100).
func (s *Server) handleLogs(c *gin.Context) {
	limit := defaultLogLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(c, fmt.Errorf("limit %q: %w", v, errors.ErrInvalidInput))
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"logs":    s.store.History(limit),
	})
}

// handleTrigger manually runs the ingestion pipeline.
func (s *Server) handleTrigger(c *gin.Context) {
	results := s.pipeline.Run(false)
	if results.Error != "" {
		handleError(c, errors.NewAppError(http.StatusInternalServerError, "Ingestion failed: "+results.Error, nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
	})
}

// handleError helper
func handleError(c *gin.Context, err error) {
	appErr := errors.MapError(err)
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
