package recipe

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"recipesnap/internal/core/vision"
	"recipesnap/internal/infrastructure/config"
	"recipesnap/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	// Prompts are built from at most this many ingredient names.
	generatorMaxPromptIngredients = 5
	generatorMaxTokens            = 150
	generatorTemperature          = 0.8
)

// Generator wraps the pretrained causal language model for free-text
// recipe synthesis. It is dormant in the default flow: the contract is
// kept stable for future re-enablement, and total unavailability of the
// underlying model is tolerated.
type Generator struct {
	cfg *config.VisionConfig

	mu     sync.Mutex
	client vision.Inference
}

// NewGenerator creates a recipe generator. The underlying client is not
// built until the first call or an explicit Load.
func NewGenerator(cfg *config.VisionConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Load eagerly constructs the inference client. Construction failure is
// non-fatal: the service keeps running on the curated catalog alone, and
// a later Load may retry.
func (g *Generator) Load(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return nil
	}

	common.LogInfo("Loading recipe generation model",
		zap.String("model", g.cfg.RecipeModel),
		zap.Bool("use_gpu", g.cfg.UseGPU),
	)

	client, err := vision.NewClient(g.cfg)
	if err != nil {
		common.LogError("Failed to load recipe generation model, continuing with curated recipes only",
			zap.Error(err),
		)
		return err
	}

	g.client = client
	common.LogInfo("Recipe generation model loaded",
		zap.String("model", g.cfg.RecipeModel),
	)
	return nil
}

// Loaded reports whether the client has been constructed successfully.
func (g *Generator) Loaded() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.client != nil
}

// Generate synthesizes one free-text recipe from the supplied ingredients.
// Not invoked in the default flow.
func (g *Generator) Generate(ctx context.Context, ingredients []string) (*Record, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients provided")
	}

	if err := g.Load(ctx); err != nil {
		return nil, fmt.Errorf("recipe generation model unavailable: %w", err)
	}

	prompted := ingredients
	if len(prompted) > generatorMaxPromptIngredients {
		prompted = prompted[:generatorMaxPromptIngredients]
	}
	prompt := fmt.Sprintf("Recipe with %s:", strings.Join(prompted, ", "))

	g.mu.Lock()
	client := g.client
	g.mu.Unlock()

	text, err := client.Complete(ctx, &vision.CompletionRequest{
		Model:       g.cfg.RecipeModel,
		Prompt:      prompt,
		MaxTokens:   generatorMaxTokens,
		Temperature: generatorTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("recipe generation failed: %w", err)
	}

	instructions := []string{strings.TrimSpace(text)}
	if instructions[0] == "" {
		instructions = []string{"Mix ingredients and cook as desired."}
	}

	return &Record{
		ID:           999,
		Title:        fmt.Sprintf("AI Recipe with %s", ingredients[0]),
		Description:  "An AI-generated recipe based on your ingredients",
		Ingredients:  prompted,
		Instructions: instructions,
		PrepTime:     "15 minutes",
		CookTime:     "20 minutes",
		Servings:     2,
		Difficulty:   DifficultyMedium,
		Cuisine:      "Fusion",
		Source:       SourceAIGenerated,
	}, nil
}

// Close releases the underlying client if it was constructed.
func (g *Generator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
