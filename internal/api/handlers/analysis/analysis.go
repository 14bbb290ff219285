package analysis

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	imageproc "recipesnap/internal/core/image"
	"recipesnap/internal/core/vision"
	"recipesnap/internal/infrastructure/config"
	"recipesnap/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves image analysis requests.
type Handler struct {
	analyzer  *vision.Analyzer
	processor *imageproc.Processor
	cfg       *config.Config
}

// NewHandler creates an analysis handler.
func NewHandler(analyzer *vision.Analyzer, processor *imageproc.Processor, cfg *config.Config) *Handler {
	return &Handler{
		analyzer:  analyzer,
		processor: processor,
		cfg:       cfg,
	}
}

// HandleAnalyzeImage accepts a multipart image upload, validates it,
// captions it and returns the extracted ingredients. Validation failures
// reject the request before any model work. The uploaded file and its
// normalized copy live only for the duration of the request.
func (h *Handler) HandleAnalyzeImage(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.LogWarn("Missing upload file",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No file uploaded",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !h.cfg.Upload.AllowedExtensionSet()[ext] {
		common.LogWarn("Rejected upload with invalid extension",
			zap.String("extension", ext),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid image file",
			"code":  "INVALID_IMAGE_FORMAT",
		})
		return
	}

	if fileHeader.Size > h.cfg.Upload.MaxSizeBytes {
		common.LogWarn("Rejected oversized upload",
			zap.Int64("size", fileHeader.Size),
			zap.Int64("max_size", h.cfg.Upload.MaxSizeBytes),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid image file",
			"code":  "INVALID_IMAGE_SIZE",
		})
		return
	}

	if err := os.MkdirAll(h.cfg.Upload.Dir, 0755); err != nil {
		common.LogError("Failed to create upload directory",
			zap.Error(err),
			zap.String("dir", h.cfg.Upload.Dir),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error processing image",
			"code":  common.ErrCodeInternalError,
		})
		return
	}

	uploadPath := filepath.Join(h.cfg.Upload.Dir, common.GenerateUUID()+ext)
	if err := c.SaveUploadedFile(fileHeader, uploadPath); err != nil {
		common.LogError("Failed to save uploaded file",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error processing image",
			"code":  common.ErrCodeInternalError,
		})
		return
	}
	common.LogInfo("Saved uploaded file",
		zap.String("path", uploadPath),
		zap.String("request_id", requestID),
	)

	processedPath := h.processor.Process(uploadPath)

	result := h.analyzer.AnalyzeImage(c.Request.Context(), processedPath)

	// Best-effort cleanup; failures are logged, never surfaced.
	cleanupFile(uploadPath, requestID)
	if processedPath != uploadPath {
		cleanupFile(processedPath, requestID)
	}

	common.LogInfo("Image analysis completed",
		zap.Bool("success", result.Success),
		zap.Int("ingredient_count", len(result.Ingredients)),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, result)
}

func cleanupFile(path, requestID string) {
	if err := os.Remove(path); err != nil {
		common.LogWarn("Failed to clean up temporary file",
			zap.Error(err),
			zap.String("path", path),
			zap.String("request_id", requestID),
		)
	}
}
