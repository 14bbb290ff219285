package vision

import (
	"context"
	"os"

	"recipesnap/internal/core/ai/cache"
	"recipesnap/internal/pkg/common"

	"go.uber.org/zap"
)

// AnalysisResult is the outcome of analyzing one image.
type AnalysisResult struct {
	Success     bool     `json:"success"`
	Caption     string   `json:"caption"`
	Ingredients []string `json:"ingredients"`
	Confidence  float64  `json:"confidence,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Analyzer runs the caption → extract → quality-gate pipeline over a
// normalized image.
type Analyzer struct {
	captioner    *Captioner
	extractor    *Extractor
	cacheManager *cache.Manager
}

// NewAnalyzer creates an analyzer. cacheManager may be nil.
func NewAnalyzer(captioner *Captioner, extractor *Extractor, cacheManager *cache.Manager) *Analyzer {
	return &Analyzer{
		captioner:    captioner,
		extractor:    extractor,
		cacheManager: cacheManager,
	}
}

// AnalyzeImage captions the image at path and extracts ingredient names
// from the caption. Model failures degrade through the caption and
// ingredient fallbacks; only an unreadable input yields a failure result.
func (a *Analyzer) AnalyzeImage(ctx context.Context, imagePath string) *AnalysisResult {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		common.LogError("Failed to read image for analysis",
			zap.Error(err),
			zap.String("path", imagePath),
		)
		return &AnalysisResult{
			Success:     false,
			Error:       err.Error(),
			Caption:     "",
			Ingredients: []string{},
		}
	}

	var cacheKey string
	if a.cacheManager != nil {
		cacheKey = cache.HashKey(data)
		if cached, err := a.cacheManager.Get(ctx, cacheKey); err == nil {
			var result AnalysisResult
			if err := common.ParseJSON(cached, &result); err == nil {
				return &result
			}
			common.LogWarn("Discarding unparseable cached analysis", zap.Error(err))
		}
	}

	caption := a.captioner.Caption(ctx, imagePath)
	common.LogInfo("Generated caption", zap.String("caption", caption))

	ingredients := a.extractor.Extract(caption)
	common.LogInfo("Extracted ingredients", zap.Int("count", len(ingredients)))

	// Generic or empty extractions get a cue-based reanalysis so the
	// final list is always non-empty and non-generic.
	if IsLowQuality(ingredients) {
		if cueBased := FridgeCues(caption); len(cueBased) > 0 {
			ingredients = cueBased
			common.LogInfo("Using fridge cue analysis", zap.Int("count", len(ingredients)))
		} else {
			ingredients = CommonStaples()
			common.LogInfo("Using common staples fallback", zap.Int("count", len(ingredients)))
		}
	}

	result := &AnalysisResult{
		Success:     true,
		Caption:     caption,
		Ingredients: ingredients,
		Confidence:  Confidence(len(ingredients)),
	}

	if a.cacheManager != nil {
		if encoded, err := common.ToJSON(result); err == nil {
			if err := a.cacheManager.Set(ctx, cacheKey, encoded); err != nil {
				common.LogWarn("Failed to cache analysis result", zap.Error(err))
			}
		}
	}

	return result
}
