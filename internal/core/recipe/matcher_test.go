package recipe

import (
	"os"
	"testing"

	"recipesnap/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func TestMatchEmptyInputReturnsFallback(t *testing.T) {
	matcher := NewMatcher(NewCatalog())

	results := matcher.Match(nil)

	assert.Len(t, results, 2)
	assert.Equal(t, "Simple Pasta", results[0].Title)
	assert.Equal(t, "Basic Fried Rice", results[1].Title)
	for _, r := range results {
		assert.Equal(t, SourceFallback, r.Source)
		assert.Zero(t, r.MatchScore)
		assert.Zero(t, r.MatchedIngredients)
	}
}

func TestMatchRanksByOverlap(t *testing.T) {
	matcher := NewMatcher(NewCatalog())

	results := matcher.Match([]string{"Tomatoes", "Lettuce", "Cucumber"})

	assert.NotEmpty(t, results)
	assert.Equal(t, "Fresh Garden Salad", results[0].Title)
	assert.Equal(t, 3, results[0].MatchedIngredients)
	assert.InDelta(t, 0.5, results[0].MatchScore, 1e-9)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].MatchScore, results[i-1].MatchScore)
	}
}

func TestMatchCapsAtFour(t *testing.T) {
	matcher := NewMatcher(NewCatalog())

	// Eggs, milk and cheese hit the smoothie bowl, scrambled eggs,
	// omelet and frittata.
	results := matcher.Match([]string{"Eggs", "Milk", "Cheese"})

	assert.Len(t, results, 4)
	assert.Equal(t, "Fresh Vegetable Omelet", results[0].Title)
}

func TestMatchBidirectionalSubstring(t *testing.T) {
	matcher := NewMatcher(NewCatalog())

	// "Cherry Tomatoes" contains the required "Tomato".
	results := matcher.Match([]string{"Cherry Tomatoes"})

	assert.NotEmpty(t, results)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.MatchedIngredients, 1)
	}
}

func TestMatchNothingQualifiesReturnsGenericRecipes(t *testing.T) {
	matcher := NewMatcher(NewCatalog())

	results := matcher.Match([]string{"Durian", "Jackfruit"})

	assert.Len(t, results, 3)
	assert.Equal(t, "Fresh Garden Salad", results[0].Title)
	assert.Equal(t, "Vegetable Stir Fry", results[1].Title)
	assert.Equal(t, "Fruit Smoothie Bowl", results[2].Title)
	for _, r := range results {
		assert.Zero(t, r.MatchScore)
	}
}

func TestMatchStableOrderForEqualScores(t *testing.T) {
	matcher := NewMatcher(NewCatalog())

	// Omelet and frittata both score 3/7; catalog order must hold.
	results := matcher.Match([]string{"Eggs", "Milk", "Cheese"})

	omeletIdx, frittataIdx := -1, -1
	for i, r := range results {
		switch r.Title {
		case "Fresh Vegetable Omelet":
			omeletIdx = i
		case "Cheese and Herb Frittata":
			frittataIdx = i
		}
	}
	assert.GreaterOrEqual(t, omeletIdx, 0)
	assert.GreaterOrEqual(t, frittataIdx, 0)
	assert.Less(t, omeletIdx, frittataIdx)
}

func TestMatchDoesNotMutateCatalog(t *testing.T) {
	catalog := NewCatalog()
	matcher := NewMatcher(catalog)

	matcher.Match([]string{"Eggs", "Milk"})

	for _, record := range catalog.Curated() {
		scored := ScoredRecord{Record: record}
		assert.Zero(t, scored.MatchScore)
		assert.Zero(t, scored.MatchedIngredients)
	}
}

func TestCatalogContents(t *testing.T) {
	catalog := NewCatalog()

	assert.Len(t, catalog.Curated(), 8)
	assert.Len(t, catalog.Fallback(), 2)

	for _, record := range catalog.Curated() {
		assert.NotEmpty(t, record.Ingredients)
		assert.NotEmpty(t, record.Instructions)
		assert.Equal(t, SourceCurated, record.Source)
	}
}
