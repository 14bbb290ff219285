package api

import (
	"context"
	"net/http"
	"time"

	analysisHandler "recipesnap/internal/api/handlers/analysis"
	"recipesnap/internal/api/handlers/health"
	modelHandler "recipesnap/internal/api/handlers/model"
	recipeHandler "recipesnap/internal/api/handlers/recipe"
	"recipesnap/internal/api/middleware"
	"recipesnap/internal/core/ai/cache"
	imageproc "recipesnap/internal/core/image"
	"recipesnap/internal/core/recipe"
	"recipesnap/internal/core/vision"
	"recipesnap/internal/infrastructure/config"
	"recipesnap/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	timeoutDuration = 120 * time.Second
	maxImageSide    = 1024
)

// SetupRouter builds the gin engine with all middleware, services and routes.
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Upload.MaxSizeBytes))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("caption_model", cfg.Vision.CaptionModel),
		zap.String("recipe_model", cfg.Vision.RecipeModel),
		zap.Duration("timeout", timeoutDuration),
	)

	processor := imageproc.NewProcessor(maxImageSide)
	captioner := vision.NewCaptioner(&cfg.Vision)
	extractor := vision.NewExtractor()
	analyzer := vision.NewAnalyzer(captioner, extractor, cacheManager)

	catalog := recipe.NewCatalog()
	matcher := recipe.NewMatcher(catalog)
	generator := recipe.NewGenerator(&cfg.Vision)

	analysisH := analysisHandler.NewHandler(analyzer, processor, cfg)
	recipeH := recipeHandler.NewHandler(matcher)
	modelH := modelHandler.NewHandler(captioner, generator)

	// Request timeout and config injection for downstream handlers.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeGatewayTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
		}
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to RecipeSnap API",
			"version": cfg.App.Version,
			"endpoints": gin.H{
				"analyze_image":    "/api/v1/analyze-image",
				"generate_recipes": "/api/v1/generate-recipes",
				"models_status":    "/api/v1/models/status",
				"health":           "/health",
			},
		})
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api/v1")
	{
		api.POST("/analyze-image", analysisH.HandleAnalyzeImage)
		api.POST("/generate-recipes", recipeH.HandleGenerateRecipes)

		models := api.Group("/models")
		{
			models.GET("/status", modelH.HandleStatus)
			models.POST("/load", modelH.HandleLoad)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Upload.MaxSizeBytes),
	)

	return router, nil
}
