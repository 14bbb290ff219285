package recipe

import (
	"net/http"

	"recipesnap/internal/core/recipe"
	"recipesnap/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Returned recipe lists never exceed this many entries.
const maxRecipesReturned = 3

// GenerateRecipesRequest is the generate-recipes request body.
type GenerateRecipesRequest struct {
	Ingredients []string `json:"ingredients"`
}

// GenerateRecipesResponse is the generate-recipes response body.
type GenerateRecipesResponse struct {
	Success bool                  `json:"success"`
	Recipes []recipe.ScoredRecord `json:"recipes"`
	Total   int                   `json:"total"`
}

// Handler serves recipe generation requests.
type Handler struct {
	matcher *recipe.Matcher
}

// NewHandler creates a recipe handler.
func NewHandler(matcher *recipe.Matcher) *Handler {
	return &Handler{matcher: matcher}
}

// HandleGenerateRecipes matches the supplied ingredients against the
// curated catalog and returns the top recipes. An empty ingredient list
// is a client error.
func (h *Handler) HandleGenerateRecipes(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	var req GenerateRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("Invalid generate-recipes request",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	if len(req.Ingredients) == 0 {
		common.LogWarn("Rejected generate-recipes request with no ingredients",
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No ingredients provided",
			"code":  "EMPTY_INGREDIENTS",
		})
		return
	}

	recipes := h.matcher.Match(req.Ingredients)
	if len(recipes) > maxRecipesReturned {
		recipes = recipes[:maxRecipesReturned]
	}

	common.LogInfo("Generated recipes",
		zap.Int("ingredient_count", len(req.Ingredients)),
		zap.Int("recipe_count", len(recipes)),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, GenerateRecipesResponse{
		Success: true,
		Recipes: recipes,
		Total:   len(recipes),
	})
}
