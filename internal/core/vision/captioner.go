package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"sync"

	"recipesnap/internal/infrastructure/config"
	"recipesnap/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	// Neutral caption returned whenever inference fails; downstream
	// extraction must always have something to work with.
	fallbackCaption = "fresh ingredients and food items"

	// Captions are short phrases; the original model call was bounded
	// to 20 tokens with sampling at temperature 0.7.
	captionMaxTokens   = 20
	captionTemperature = 0.7
)

// Captioner wraps the pretrained image-captioning model behind a lazily
// constructed inference client.
type Captioner struct {
	cfg *config.VisionConfig

	mu     sync.Mutex
	client Inference
	err    error
}

// NewCaptioner creates a captioner. The underlying client is not built
// until the first call or an explicit Load.
func NewCaptioner(cfg *config.VisionConfig) *Captioner {
	return &Captioner{cfg: cfg}
}

// Load eagerly constructs the inference client. Construction happens at
// most once even under concurrent callers.
func (c *Captioner) Load(ctx context.Context) error {
	return c.ensure()
}

// Loaded reports whether the client has been constructed successfully.
func (c *Captioner) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client != nil
}

func (c *Captioner) ensure() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return nil
	}
	if c.err != nil {
		return c.err
	}

	common.LogInfo("Loading image captioning model",
		zap.String("model", c.cfg.CaptionModel),
		zap.Bool("use_gpu", c.cfg.UseGPU),
	)

	client, err := NewClient(c.cfg)
	if err != nil {
		c.err = fmt.Errorf("failed to initialize captioning client: %w", err)
		common.LogError("Failed to load image captioning model", zap.Error(c.err))
		return c.err
	}

	c.client = client
	common.LogInfo("Image captioning model loaded",
		zap.String("model", c.cfg.CaptionModel),
	)
	return nil
}

// Caption produces a short natural-language caption for the image at path.
// Inference failures degrade to a neutral default caption instead of an
// error so downstream stages stay operable.
func (c *Captioner) Caption(ctx context.Context, imagePath string) string {
	if err := c.ensure(); err != nil {
		return fallbackCaption
	}

	imageData, err := encodeImageFile(imagePath)
	if err != nil {
		common.LogError("Failed to read image for captioning",
			zap.Error(err),
			zap.String("path", imagePath),
		)
		return fallbackCaption
	}

	c.mu.Lock()
	client := c.client
	c.mu.Unlock()

	caption, err := client.Complete(ctx, &CompletionRequest{
		Model:       c.cfg.CaptionModel,
		Prompt:      "Describe the food items visible in this image in one short phrase.",
		ImageData:   imageData,
		MaxTokens:   captionMaxTokens,
		Temperature: captionTemperature,
	})
	if err != nil {
		common.LogError("Caption generation failed, using fallback caption",
			zap.Error(err),
			zap.String("model", c.cfg.CaptionModel),
		)
		return fallbackCaption
	}

	caption = strings.TrimSpace(caption)
	if caption == "" {
		return fallbackCaption
	}
	return caption
}

// Close releases the underlying client if it was constructed.
func (c *Captioner) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// encodeImageFile reads the file at path and returns it as a JPEG data URI.
func encodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data), nil
}
