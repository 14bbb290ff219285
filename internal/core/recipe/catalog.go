package recipe

// Difficulty levels for a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Source records where a recipe came from.
type Source string

const (
	SourceCurated     Source = "Curated"
	SourceFallback    Source = "Fallback"
	SourceAIGenerated Source = "AI Generated"
)

// Record is one recipe in the catalog. Records are immutable after load;
// per-request scoring never mutates them.
type Record struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	PrepTime     string     `json:"prep_time"`
	CookTime     string     `json:"cook_time"`
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
	Cuisine      string     `json:"cuisine"`
	Source       Source     `json:"source"`
}

// ScoredRecord is a catalog record annotated with per-request match fields.
type ScoredRecord struct {
	Record
	MatchScore         float64 `json:"match_score,omitempty"`
	MatchedIngredients int     `json:"matched_ingredients,omitempty"`
}

// Catalog holds the curated recipes plus the smaller fallback set used
// when no ingredients are supplied at all. Read-only after construction.
type Catalog struct {
	curated  []Record
	fallback []Record
}

// NewCatalog loads the built-in recipe catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		curated:  curatedRecipes(),
		fallback: fallbackRecipes(),
	}
}

// Curated returns the curated recipe records in catalog order.
func (c *Catalog) Curated() []Record {
	return c.curated
}

// Fallback returns the fallback records used for empty ingredient input.
func (c *Catalog) Fallback() []Record {
	return c.fallback
}

func curatedRecipes() []Record {
	return []Record{
		{
			ID:          1,
			Title:       "Fresh Garden Salad",
			Description: "A healthy and refreshing salad with fresh vegetables",
			Ingredients: []string{"Lettuce", "Tomato", "Cucumber", "Onion", "Olive Oil", "Lemon"},
			Instructions: []string{
				"Wash and chop all vegetables into bite-sized pieces",
				"Place lettuce in a large salad bowl as the base",
				"Add tomatoes, cucumber, and onion on top",
				"Drizzle with olive oil and fresh lemon juice",
				"Season with salt and pepper to taste",
				"Toss gently and serve immediately",
			},
			PrepTime:   "15 minutes",
			CookTime:   "0 minutes",
			Servings:   4,
			Difficulty: DifficultyEasy,
			Cuisine:    "Mediterranean",
			Source:     SourceCurated,
		},
		{
			ID:          2,
			Title:       "Vegetable Stir Fry",
			Description: "Quick and healthy stir-fried vegetables",
			Ingredients: []string{"Broccoli", "Carrot", "Bell Pepper", "Garlic", "Ginger", "Soy Sauce", "Oil"},
			Instructions: []string{
				"Heat 2 tablespoons of oil in a large pan or wok over high heat",
				"Add minced garlic and ginger, stir-fry for 30 seconds until fragrant",
				"Add harder vegetables first (carrots, broccoli) and cook for 3-4 minutes",
				"Add softer vegetables (bell peppers) and cook for another 2 minutes",
				"Add soy sauce and stir everything together",
				"Cook for 1-2 more minutes until vegetables are tender-crisp",
				"Serve hot over rice or noodles",
			},
			PrepTime:   "10 minutes",
			CookTime:   "10 minutes",
			Servings:   3,
			Difficulty: DifficultyEasy,
			Cuisine:    "Asian",
			Source:     SourceCurated,
		},
		{
			ID:          3,
			Title:       "Fruit Smoothie Bowl",
			Description: "Nutritious and delicious smoothie bowl",
			Ingredients: []string{"Banana", "Strawberry", "Blueberry", "Milk", "Honey", "Granola"},
			Instructions: []string{
				"Freeze fruits for at least 2 hours before making",
				"Add frozen banana and berries to a blender",
				"Pour in a small amount of milk and blend until smooth and thick",
				"Pour the smoothie into a bowl",
				"Top with fresh fruits, granola, and a drizzle of honey",
				"Add nuts or seeds if available",
				"Serve immediately with a spoon",
			},
			PrepTime:   "5 minutes",
			CookTime:   "0 minutes",
			Servings:   1,
			Difficulty: DifficultyEasy,
			Cuisine:    "Healthy",
			Source:     SourceCurated,
		},
		{
			ID:          4,
			Title:       "Scrambled Eggs with Vegetables",
			Description: "Protein-rich breakfast with fresh vegetables",
			Ingredients: []string{"Eggs", "Tomato", "Onion", "Pepper", "Cheese", "Butter", "Salt"},
			Instructions: []string{
				"Crack 3-4 eggs into a bowl and whisk with salt and pepper",
				"Dice tomatoes, onions, and peppers into small pieces",
				"Heat butter in a non-stick pan over medium heat",
				"Add vegetables and cook for 3-4 minutes until softened",
				"Pour in the beaten eggs and let sit for 30 seconds",
				"Gently stir and scramble the eggs with the vegetables",
				"Add cheese in the last minute and fold in gently",
				"Serve hot with toast or bread",
			},
			PrepTime:   "8 minutes",
			CookTime:   "7 minutes",
			Servings:   2,
			Difficulty: DifficultyEasy,
			Cuisine:    "American",
			Source:     SourceCurated,
		},
		{
			ID:          5,
			Title:       "Roasted Vegetable Medley",
			Description: "Colorful roasted vegetables with herbs",
			Ingredients: []string{"Broccoli", "Bell Peppers", "Carrots", "Onions", "Olive Oil", "Herbs", "Salt"},
			Instructions: []string{
				"Preheat oven to 425°F (220°C)",
				"Cut all vegetables into similar-sized pieces",
				"Toss vegetables with olive oil, salt, and herbs",
				"Spread on a large baking sheet in a single layer",
				"Roast for 25-30 minutes, stirring once halfway through",
				"Vegetables should be tender and lightly caramelized",
				"Serve as a side dish or over rice",
			},
			PrepTime:   "15 minutes",
			CookTime:   "30 minutes",
			Servings:   4,
			Difficulty: DifficultyEasy,
			Cuisine:    "Mediterranean",
			Source:     SourceCurated,
		},
		{
			ID:          6,
			Title:       "Fresh Vegetable Omelet",
			Description: "Fluffy omelet packed with fresh vegetables",
			Ingredients: []string{"Eggs", "Milk", "Cheese", "Tomatoes", "Onions", "Bell Peppers", "Herbs"},
			Instructions: []string{
				"Beat 3 eggs with 2 tablespoons of milk",
				"Dice vegetables into small pieces",
				"Heat a non-stick pan over medium heat with a little oil",
				"Sauté vegetables for 2-3 minutes until softened",
				"Pour in the beaten eggs and let set for 1 minute",
				"Add cheese and herbs to one half of the omelet",
				"Fold the omelet in half and slide onto a plate",
				"Serve immediately while hot",
			},
			PrepTime:   "10 minutes",
			CookTime:   "8 minutes",
			Servings:   1,
			Difficulty: DifficultyMedium,
			Cuisine:    "French",
			Source:     SourceCurated,
		},
		{
			ID:          7,
			Title:       "Corn and Vegetable Soup",
			Description: "Hearty soup with fresh corn and vegetables",
			Ingredients: []string{"Corn", "Carrots", "Onions", "Broccoli", "Vegetable Broth", "Herbs", "Salt"},
			Instructions: []string{
				"Heat oil in a large pot over medium heat",
				"Add diced onions and carrots, cook for 5 minutes",
				"Add corn kernels and cook for 3 minutes",
				"Pour in vegetable broth and bring to a boil",
				"Add broccoli and herbs, simmer for 10 minutes",
				"Season with salt and pepper to taste",
				"Serve hot with crusty bread",
			},
			PrepTime:   "15 minutes",
			CookTime:   "20 minutes",
			Servings:   4,
			Difficulty: DifficultyEasy,
			Cuisine:    "American",
			Source:     SourceCurated,
		},
		{
			ID:          8,
			Title:       "Cheese and Herb Frittata",
			Description: "Baked egg dish with cheese and fresh herbs",
			Ingredients: []string{"Eggs", "Milk", "Cheese", "Herbs", "Onions", "Butter", "Salt"},
			Instructions: []string{
				"Preheat oven to 375°F (190°C)",
				"Beat 6 eggs with milk, salt, and pepper",
				"Heat butter in an oven-safe skillet over medium heat",
				"Add diced onions and cook until softened",
				"Pour in the egg mixture and add cheese and herbs",
				"Cook for 3-4 minutes until edges start to set",
				"Transfer to oven and bake for 12-15 minutes",
				"Cut into wedges and serve warm",
			},
			PrepTime:   "10 minutes",
			CookTime:   "20 minutes",
			Servings:   4,
			Difficulty: DifficultyMedium,
			Cuisine:    "Italian",
			Source:     SourceCurated,
		},
	}
}

func fallbackRecipes() []Record {
	return []Record{
		{
			ID:          100,
			Title:       "Simple Pasta",
			Description: "A basic pasta dish that's always delicious",
			Ingredients: []string{"Pasta", "Olive Oil", "Garlic", "Salt", "Pepper"},
			Instructions: []string{
				"Boil water in a large pot with salt",
				"Add pasta and cook according to package instructions",
				"Heat olive oil in a pan and add minced garlic",
				"Sauté garlic until fragrant but not brown",
				"Drain pasta and toss with garlic oil",
				"Season with salt and pepper to taste",
				"Serve hot with grated cheese if available",
			},
			PrepTime:   "5 minutes",
			CookTime:   "15 minutes",
			Servings:   2,
			Difficulty: DifficultyEasy,
			Cuisine:    "Italian",
			Source:     SourceFallback,
		},
		{
			ID:          101,
			Title:       "Basic Fried Rice",
			Description: "Simple fried rice with whatever you have",
			Ingredients: []string{"Rice", "Eggs", "Oil", "Salt", "Soy Sauce"},
			Instructions: []string{
				"Cook rice and let it cool (day-old rice works best)",
				"Heat oil in a large pan or wok",
				"Scramble eggs in the pan and set aside",
				"Add rice to the pan and break up any clumps",
				"Stir-fry rice for 3-4 minutes",
				"Add scrambled eggs back to the pan",
				"Season with soy sauce and salt",
				"Serve hot",
			},
			PrepTime:   "10 minutes",
			CookTime:   "10 minutes",
			Servings:   2,
			Difficulty: DifficultyEasy,
			Cuisine:    "Asian",
			Source:     SourceFallback,
		},
	}
}
