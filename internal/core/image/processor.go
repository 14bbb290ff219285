package image

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"recipesnap/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	// Longest dimension after normalization.
	defaultMaxDimension = 1024
	// JPEG quality for the re-encoded image.
	jpegQuality = 85
)

// Processor normalizes uploaded images before captioning: 3-channel color,
// longest side capped, JPEG re-encode.
type Processor struct {
	maxDimension int
}

// NewProcessor creates an image processor. maxDimension <= 0 selects the default.
func NewProcessor(maxDimension int) *Processor {
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}
	return &Processor{
		maxDimension: maxDimension,
	}
}

// Process normalizes the image at path and writes the result next to it.
// It returns the path of the normalized image. Any decode or processing
// failure returns the original path unchanged so the request can proceed.
func (p *Processor) Process(path string) string {
	processed, err := p.normalize(path)
	if err != nil {
		common.LogError("Image processing failed, using original image",
			zap.Error(err),
			zap.String("path", path),
		)
		return path
	}
	return processed
}

func (p *Processor) normalize(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// Drawing into RGBA gives a 3-channel color image regardless of the
	// source color model (grayscale, paletted, CMYK).
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	dstWidth, dstHeight := width, height
	if width > p.maxDimension || height > p.maxDimension {
		if width >= height {
			dstWidth = p.maxDimension
			dstHeight = height * p.maxDimension / width
		} else {
			dstHeight = p.maxDimension
			dstWidth = width * p.maxDimension / height
		}
		if dstWidth < 1 {
			dstWidth = 1
		}
		if dstHeight < 1 {
			dstHeight = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	processedPath := processedPathFor(path)
	out, err := os.Create(processedPath)
	if err != nil {
		return "", fmt.Errorf("failed to create processed file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		os.Remove(processedPath)
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}

	common.LogDebug("Image normalized",
		zap.String("format", format),
		zap.Int("src_width", width),
		zap.Int("src_height", height),
		zap.Int("dst_width", dstWidth),
		zap.Int("dst_height", dstHeight),
	)

	return processedPath, nil
}

// processedPathFor derives the output path: the source name with a
// "_processed" suffix and a .jpg extension.
func processedPathFor(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_processed.jpg"
}
