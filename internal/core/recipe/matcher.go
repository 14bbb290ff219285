package recipe

import (
	"sort"
	"strings"

	"recipesnap/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	// A match pass can yield up to 4 records; the transport boundary
	// truncates to 3.
	maxMatched = 4
	// Generic fallback size when nothing in the catalog matches.
	genericFallbackSize = 3
)

// Matcher scores the catalog against a list of available ingredients.
type Matcher struct {
	catalog *Catalog
}

// NewMatcher creates a matcher over the given catalog.
func NewMatcher(catalog *Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// Match returns catalog records ranked by ingredient overlap. Each call
// builds fresh ScoredRecord copies; the shared catalog is never mutated.
//
// An empty input returns the fixed fallback catalog unscored. With input,
// a record qualifies when at least one of its required ingredients has a
// substring relationship (in either direction) with a supplied ingredient;
// qualifying records are scored by matched/required and stably sorted
// descending. If nothing qualifies, the first 3 catalog records are
// returned unscored.
func (m *Matcher) Match(ingredients []string) []ScoredRecord {
	if len(ingredients) == 0 {
		return unscored(m.catalog.Fallback())
	}

	available := make([]string, len(ingredients))
	for i, ing := range ingredients {
		available[i] = strings.ToLower(ing)
	}

	var matched []ScoredRecord
	for _, record := range m.catalog.Curated() {
		count := matchedIngredientCount(record.Ingredients, available)
		if count < 1 {
			continue
		}
		matched = append(matched, ScoredRecord{
			Record:             record,
			MatchScore:         float64(count) / float64(len(record.Ingredients)),
			MatchedIngredients: count,
		})
	}

	if len(matched) == 0 {
		common.LogInfo("No catalog match, returning generic fallback",
			zap.Int("ingredient_count", len(ingredients)),
		)
		curated := m.catalog.Curated()
		n := genericFallbackSize
		if n > len(curated) {
			n = len(curated)
		}
		return unscored(curated[:n])
	}

	// Stable sort keeps catalog order among equal scores.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MatchScore > matched[j].MatchScore
	})

	if len(matched) > maxMatched {
		matched = matched[:maxMatched]
	}
	return matched
}

// matchedIngredientCount counts required ingredients with a substring
// relationship to any available ingredient. The check runs in both
// directions, which is known to cross-match short tokens (e.g. "egg" and
// "eggplant"); this permissiveness is intentional and kept as-is.
func matchedIngredientCount(required []string, available []string) int {
	count := 0
	for _, req := range required {
		reqLower := strings.ToLower(req)
		for _, avail := range available {
			if strings.Contains(reqLower, avail) || strings.Contains(avail, reqLower) {
				count++
				break
			}
		}
	}
	return count
}

func unscored(records []Record) []ScoredRecord {
	out := make([]ScoredRecord, len(records))
	for i, record := range records {
		out[i] = ScoredRecord{Record: record}
	}
	return out
}
