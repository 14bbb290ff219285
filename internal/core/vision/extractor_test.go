package vision

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

func TestExtractFindsVocabularyTerms(t *testing.T) {
	extractor := NewExtractor()

	ingredients := extractor.Extract("a bowl of chicken with broccoli and rice")

	assert.Contains(t, ingredients, "Chicken")
	assert.Contains(t, ingredients, "Broccoli")
	assert.Contains(t, ingredients, "Rice")
}

func TestExtractIsCaseInsensitive(t *testing.T) {
	extractor := NewExtractor()

	ingredients := extractor.Extract("A Plate Of SALMON And Spinach")

	assert.Contains(t, ingredients, "Salmon")
	assert.Contains(t, ingredients, "Spinach")
}

func TestExtractDeduplicatesAcrossGroups(t *testing.T) {
	extractor := NewExtractor()

	// "milk" appears in both the proteins and dairy groups.
	ingredients := extractor.Extract("a glass of milk")

	count := 0
	for _, ing := range ingredients {
		if ing == "Milk" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtractCapsAtTen(t *testing.T) {
	extractor := NewExtractor()

	caption := "apple banana orange lemon lime grape cherry peach pear mango " +
		"tomato potato onion carrot broccoli spinach lettuce cucumber garlic ginger"
	ingredients := extractor.Extract(caption)

	assert.LessOrEqual(t, len(ingredients), 10)
	assert.NotEmpty(t, ingredients)
}

func TestExtractGenericFallback(t *testing.T) {
	extractor := NewExtractor()

	// No vocabulary term appears; words carrying a food indicator are
	// promoted instead, capped at 3.
	ingredients := extractor.Extract("some fresh organic goods on display")

	assert.NotEmpty(t, ingredients)
	assert.LessOrEqual(t, len(ingredients), 3)
	assert.Contains(t, ingredients, "Fresh")
	assert.Contains(t, ingredients, "Organic")
}

func TestExtractNoMatchReturnsEmpty(t *testing.T) {
	extractor := NewExtractor()

	ingredients := extractor.Extract("a wooden table next to a window")

	assert.Empty(t, ingredients)
}

func TestIsLowQuality(t *testing.T) {
	assert.True(t, IsLowQuality(nil))
	assert.True(t, IsLowQuality([]string{}))
	assert.True(t, IsLowQuality([]string{"Fresh", "Food"}))
	assert.True(t, IsLowQuality([]string{"Fresh", "Fruits", "Vegetables"}))

	assert.False(t, IsLowQuality([]string{"Chicken"}))
	assert.False(t, IsLowQuality([]string{"Fresh", "Chicken"}))
	// More than 3 entries is never considered low quality.
	assert.False(t, IsLowQuality([]string{"Fresh", "Fruits", "Vegetables", "Food"}))
}

func TestFridgeCuesDairySection(t *testing.T) {
	ingredients := FridgeCues("a refrigerator with milk bottles on the shelf")

	assert.Equal(t, []string{"Milk", "Eggs", "Cheese", "Butter"}, ingredients)
}

func TestFridgeCuesProduceSection(t *testing.T) {
	ingredients := FridgeCues("shelves full of green produce")

	assert.Equal(t, []string{"Tomatoes", "Lettuce", "Carrots", "Broccoli", "Onions"}, ingredients)
}

func TestFridgeCuesCombineAndDeduplicate(t *testing.T) {
	ingredients := FridgeCues("milk cartons next to fresh fruit")

	assert.Contains(t, ingredients, "Milk")
	assert.Contains(t, ingredients, "Tomatoes")
	assert.Contains(t, ingredients, "Orange Juice")

	seen := make(map[string]bool)
	for _, ing := range ingredients {
		assert.False(t, seen[ing], "duplicate ingredient %q", ing)
		seen[ing] = true
	}
}

func TestFridgeCuesDefaultVariety(t *testing.T) {
	ingredients := FridgeCues("a closed white refrigerator door")

	assert.Len(t, ingredients, 14)
	assert.Contains(t, ingredients, "Milk")
	assert.Contains(t, ingredients, "Bell Peppers")
}

func TestCommonStaples(t *testing.T) {
	staples := CommonStaples()

	assert.Len(t, staples, 15)
	assert.Contains(t, staples, "Eggs")
	assert.Contains(t, staples, "Cabbage")
}

func TestConfidence(t *testing.T) {
	assert.InDelta(t, 0.6, Confidence(0), 1e-9)
	assert.InDelta(t, 0.7, Confidence(5), 1e-9)
	assert.InDelta(t, 0.9, Confidence(15), 1e-9)
	// The ceiling holds for any count.
	assert.InDelta(t, 0.9, Confidence(100), 1e-9)
}
