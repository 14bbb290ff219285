package model

import (
	"net/http"

	"recipesnap/internal/core/recipe"
	"recipesnap/internal/core/vision"
	"recipesnap/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	statusLoaded    = "loaded"
	statusNotLoaded = "not loaded"
)

// Handler exposes model adapter lifecycle endpoints.
type Handler struct {
	captioner *vision.Captioner
	generator *recipe.Generator
}

// NewHandler creates a model handler.
func NewHandler(captioner *vision.Captioner, generator *recipe.Generator) *Handler {
	return &Handler{
		captioner: captioner,
		generator: generator,
	}
}

// HandleStatus reports whether each model adapter has been constructed.
func (h *Handler) HandleStatus(c *gin.Context) {
	imageStatus := statusNotLoaded
	if h.captioner.Loaded() {
		imageStatus = statusLoaded
	}
	recipeStatus := statusNotLoaded
	if h.generator.Loaded() {
		recipeStatus = statusLoaded
	}

	c.JSON(http.StatusOK, gin.H{
		"image_analyzer":   imageStatus,
		"recipe_generator": recipeStatus,
		"status":           "ready",
	})
}

// HandleLoad forces eager construction of both model adapters. A failed
// captioner is an error; a failed recipe generator is tolerated so the
// service can keep serving curated recipes.
func (h *Handler) HandleLoad(c *gin.Context) {
	common.LogInfo("Loading all models")

	if err := h.captioner.Load(c.Request.Context()); err != nil {
		common.LogError("Failed to load image captioning model", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error loading models: " + err.Error(),
			"code":  common.ErrCodeInternalError,
		})
		return
	}

	recipeStatus := statusLoaded
	if err := h.generator.Load(c.Request.Context()); err != nil {
		// Non-fatal: curated recipes keep working without it.
		recipeStatus = statusNotLoaded
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "All models loaded successfully",
		"models": gin.H{
			"image_analyzer":   statusLoaded,
			"recipe_generator": recipeStatus,
		},
	})
}
