package recipe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	recipecore "recipesnap/internal/core/recipe"
	"recipesnap/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func setupRouter() *gin.Engine {
	handler := NewHandler(recipecore.NewMatcher(recipecore.NewCatalog()))
	router := gin.New()
	router.POST("/api/v1/generate-recipes", handler.HandleGenerateRecipes)
	return router
}

func postRecipes(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/generate-recipes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateRecipesInvalidJSON(t *testing.T) {
	w := postRecipes(setupRouter(), "{not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestGenerateRecipesEmptyIngredients(t *testing.T) {
	w := postRecipes(setupRouter(), `{"ingredients":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_INGREDIENTS")
}

func TestGenerateRecipesMatches(t *testing.T) {
	w := postRecipes(setupRouter(), `{"ingredients":["Tomatoes","Lettuce","Cucumber"]}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp GenerateRecipesResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Recipes)
	assert.Equal(t, len(resp.Recipes), resp.Total)
	assert.Equal(t, "Fresh Garden Salad", resp.Recipes[0].Title)
	assert.Greater(t, resp.Recipes[0].MatchScore, 0.0)
}

func TestGenerateRecipesCapsAtThree(t *testing.T) {
	// Four catalog entries qualify for these ingredients; the response
	// still carries at most three.
	w := postRecipes(setupRouter(), `{"ingredients":["Eggs","Milk","Cheese"]}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp GenerateRecipesResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recipes, 3)
	assert.Equal(t, 3, resp.Total)
}

func TestGenerateRecipesUnknownIngredientsStillReturnRecipes(t *testing.T) {
	w := postRecipes(setupRouter(), `{"ingredients":["Durian"]}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp GenerateRecipesResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Recipes, 3)
	for _, r := range resp.Recipes {
		assert.Zero(t, r.MatchScore)
	}
}
