package vision

import (
	"math"
	"strings"
	"unicode"

	"recipesnap/internal/pkg/common"
)

// defaultVocabulary is the closed extraction vocabulary, grouped by food
// category. Overlap between groups is permitted (e.g. milk is both dairy
// and a protein staple); duplicates are dropped at extraction time.
var defaultVocabulary = map[string][]string{
	"fruits": {
		"apple", "apples", "banana", "bananas", "orange", "oranges", "lemon", "lemons",
		"lime", "limes", "strawberry", "strawberries", "blueberry", "blueberries",
		"grape", "grapes", "cherry", "cherries", "peach", "peaches", "pear", "pears",
		"pineapple", "mango", "avocado", "avocados", "kiwi", "watermelon", "melon",
	},
	"vegetables": {
		"tomato", "tomatoes", "potato", "potatoes", "onion", "onions", "carrot", "carrots",
		"broccoli", "spinach", "lettuce", "cucumber", "cucumbers", "pepper", "peppers",
		"bell pepper", "garlic", "ginger", "mushroom", "mushrooms", "corn", "peas",
		"beans", "green beans", "celery", "cabbage", "cauliflower", "zucchini",
		"eggplant", "radish", "beet", "beetroot", "asparagus", "artichoke",
	},
	"proteins": {
		"chicken", "beef", "pork", "fish", "salmon", "tuna", "shrimp", "egg", "eggs",
		"cheese", "milk", "yogurt", "tofu", "turkey", "ham", "bacon", "sausage",
	},
	"grains": {
		"bread", "rice", "pasta", "noodles", "quinoa", "oats", "flour", "cereal",
		"crackers", "tortilla", "bagel", "muffin",
	},
	"herbs": {
		"basil", "oregano", "thyme", "rosemary", "parsley", "cilantro", "mint",
		"sage", "dill", "chives", "paprika", "cumin", "turmeric", "cinnamon",
	},
	"pantry": {
		"oil", "olive oil", "butter", "salt", "pepper", "sugar", "honey", "vinegar",
		"soy sauce", "mustard", "ketchup", "mayo", "mayonnaise",
	},
	"dairy": {
		"milk", "cream", "yogurt", "cheese", "butter", "sour cream",
	},
}

// foodIndicators are generic substrings used as a last-resort scan when no
// vocabulary term matches the caption.
var foodIndicators = []string{"food", "fruit", "vegetable", "meat", "dairy", "fresh", "organic"}

// genericTerms mark an extraction result as too vague to be useful.
var genericTerms = map[string]bool{
	"fresh":      true,
	"fruits":     true,
	"vegetables": true,
	"food":       true,
	"items":      true,
	"produce":    true,
}

const (
	maxIngredients     = 10
	maxGenericFallback = 3
	lowQualityCount    = 3
	confidenceBase     = 0.6
	confidencePerMatch = 0.02
	confidenceCeiling  = 0.9
)

// Extractor turns a caption into a list of ingredient display names by
// keyword matching against a fixed vocabulary. This is a deliberate
// heuristic simplification, kept behind this interface so a real
// classifier could replace it without touching the matching contract.
type Extractor struct {
	vocabulary map[string][]string
}

// NewExtractor creates an extractor with the built-in vocabulary.
func NewExtractor() *Extractor {
	return &Extractor{vocabulary: defaultVocabulary}
}

// Extract returns an ordered, de-duplicated list of at most 10 ingredient
// display names found in the caption. Vocabulary iteration order is
// unordered; the only guarantee is that the first encountered form of a
// term is kept and duplicates are dropped.
func (e *Extractor) Extract(caption string) []string {
	captionLower := strings.ToLower(caption)

	var found []string
	seen := make(map[string]bool)

	for _, terms := range e.vocabulary {
		for _, term := range terms {
			if !strings.Contains(captionLower, term) {
				continue
			}
			display := common.TitleCase(term)
			key := strings.ToLower(display)
			if seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, display)
		}
	}

	// No vocabulary hits: fall back to words carrying a generic food
	// indicator, capped at 3.
	if len(found) == 0 {
		for _, word := range captionWords(captionLower) {
			if !containsAny(word, foodIndicators) {
				continue
			}
			display := common.TitleCase(word)
			key := strings.ToLower(display)
			if seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, display)
			if len(found) >= maxGenericFallback {
				break
			}
		}
	}

	if len(found) > maxIngredients {
		found = found[:maxIngredients]
	}
	return found
}

// IsLowQuality reports whether an extraction result is empty or consists of
// at most 3 purely generic terms, in which case the caller should reanalyze.
func IsLowQuality(ingredients []string) bool {
	if len(ingredients) == 0 {
		return true
	}
	if len(ingredients) > lowQualityCount {
		return false
	}
	for _, ing := range ingredients {
		if !genericTerms[strings.ToLower(ing)] {
			return false
		}
	}
	return true
}

// FridgeCues maps section indicator phrases in the caption to fixed sets of
// plausible fridge ingredients. With no cue matched it returns a default
// variety of common staples, so the result is never empty.
func FridgeCues(caption string) []string {
	captionLower := strings.ToLower(caption)

	var detected []string
	if containsAny(captionLower, []string{"milk", "dairy", "bottles", "carton"}) {
		detected = append(detected, "Milk", "Eggs", "Cheese", "Butter")
	}
	if containsAny(captionLower, []string{"vegetables", "fresh", "green", "produce"}) {
		detected = append(detected, "Tomatoes", "Lettuce", "Carrots", "Broccoli", "Onions")
	}
	if containsAny(captionLower, []string{"fruit", "orange", "yellow"}) {
		detected = append(detected, "Orange Juice", "Corn")
	}

	if len(detected) == 0 {
		detected = []string{
			"Milk", "Eggs", "Cheese", "Butter", "Orange Juice",
			"Tomatoes", "Lettuce", "Carrots", "Broccoli", "Corn",
			"Onions", "Bell Peppers", "Herbs", "Cucumber",
		}
	}

	return dedupe(detected)
}

// CommonStaples is the fixed list of refrigerator staples used when
// detection yields nothing at all.
func CommonStaples() []string {
	return []string{
		"Milk", "Eggs", "Cheese", "Butter", "Orange Juice",
		"Tomatoes", "Onions", "Carrots", "Broccoli", "Lettuce",
		"Corn", "Cabbage", "Bell Peppers", "Cucumber", "Herbs",
	}
}

// Confidence derives the analysis confidence from the ingredient count:
// min(0.9, 0.6 + 0.02 * n). A monotonic heuristic, not a probability.
func Confidence(ingredientCount int) float64 {
	return math.Min(confidenceCeiling, confidenceBase+confidencePerMatch*float64(ingredientCount))
}

func captionWords(caption string) []string {
	return strings.FieldsFunc(caption, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
