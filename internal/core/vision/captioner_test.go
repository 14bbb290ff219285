package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"recipesnap/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
)

func captionServer(t *testing.T, caption string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": caption}},
			},
		})
	}))
}

func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.jpg")
	assert.NoError(t, os.WriteFile(path, []byte("not a real jpeg"), 0o644))
	return path
}

func TestCaptionerLazyLoad(t *testing.T) {
	srv := captionServer(t, "a fridge full of vegetables")
	defer srv.Close()

	captioner := NewCaptioner(&config.VisionConfig{BaseURL: srv.URL, CaptionModel: "m"})
	assert.False(t, captioner.Loaded())

	caption := captioner.Caption(context.Background(), writeTempImage(t))

	assert.Equal(t, "a fridge full of vegetables", caption)
	assert.True(t, captioner.Loaded())
	assert.NoError(t, captioner.Close())
}

func TestCaptionerLoadFailureRetained(t *testing.T) {
	captioner := NewCaptioner(&config.VisionConfig{})

	err := captioner.Load(context.Background())
	assert.Error(t, err)
	assert.False(t, captioner.Loaded())

	// The construction error is retained; a second attempt reports the
	// same failure.
	again := captioner.Load(context.Background())
	assert.Equal(t, err, again)
}

func TestCaptionerFallbackOnLoadFailure(t *testing.T) {
	captioner := NewCaptioner(&config.VisionConfig{})

	caption := captioner.Caption(context.Background(), writeTempImage(t))

	assert.Equal(t, "fresh ingredients and food items", caption)
}

func TestCaptionerFallbackOnUnreadableImage(t *testing.T) {
	srv := captionServer(t, "unused")
	defer srv.Close()

	captioner := NewCaptioner(&config.VisionConfig{BaseURL: srv.URL})

	caption := captioner.Caption(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))

	assert.Equal(t, "fresh ingredients and food items", caption)
}

func TestCaptionerFallbackOnInferenceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	captioner := NewCaptioner(&config.VisionConfig{BaseURL: srv.URL})

	caption := captioner.Caption(context.Background(), writeTempImage(t))

	assert.Equal(t, "fresh ingredients and food items", caption)
}

func TestCaptionerFallbackOnEmptyCaption(t *testing.T) {
	srv := captionServer(t, "   ")
	defer srv.Close()

	captioner := NewCaptioner(&config.VisionConfig{BaseURL: srv.URL})

	caption := captioner.Caption(context.Background(), writeTempImage(t))

	assert.Equal(t, "fresh ingredients and food items", caption)
}
