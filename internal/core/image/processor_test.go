package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recipesnap/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	assert.NoError(t, err)
	defer f.Close()
	assert.NoError(t, png.Encode(f, img))
	return path
}

func decodeDims(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	assert.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	return cfg.Width, cfg.Height
}

func TestProcessResizesLargeImage(t *testing.T) {
	processor := NewProcessor(64)
	src := writeTestPNG(t, 200, 100)

	out := processor.Process(src)

	assert.NotEqual(t, src, out)
	assert.True(t, strings.HasSuffix(out, "_processed.jpg"))

	width, height := decodeDims(t, out)
	assert.Equal(t, 64, width)
	assert.Equal(t, 32, height)
}

func TestProcessResizesPortraitImage(t *testing.T) {
	processor := NewProcessor(64)
	src := writeTestPNG(t, 50, 100)

	out := processor.Process(src)

	width, height := decodeDims(t, out)
	assert.Equal(t, 32, width)
	assert.Equal(t, 64, height)
}

func TestProcessKeepsSmallImageDimensions(t *testing.T) {
	processor := NewProcessor(64)
	src := writeTestPNG(t, 40, 30)

	out := processor.Process(src)

	// Still re-encoded as JPEG, but not resized.
	width, height := decodeDims(t, out)
	assert.Equal(t, 40, width)
	assert.Equal(t, 30, height)
}

func TestProcessUndecodableReturnsOriginal(t *testing.T) {
	processor := NewProcessor(64)
	path := filepath.Join(t.TempDir(), "garbage.jpg")
	assert.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	out := processor.Process(path)

	assert.Equal(t, path, out)
}

func TestProcessMissingFileReturnsOriginal(t *testing.T) {
	processor := NewProcessor(64)
	path := filepath.Join(t.TempDir(), "missing.jpg")

	out := processor.Process(path)

	assert.Equal(t, path, out)
}

func TestNewProcessorDefaultsDimension(t *testing.T) {
	processor := NewProcessor(0)

	assert.Equal(t, defaultMaxDimension, processor.maxDimension)
}
