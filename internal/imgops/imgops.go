// Package imgops provides the pixel-space half of the coordinate model:
// mapping normalized bounding boxes onto concrete image dimensions, fitting
// images under the generation service's pixel ceiling, and restoring
// generated output to the original resolution.
package imgops

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/monkeytranslate/monkeytranslate/internal/region"
)

// PixelRect maps a normalized bounding box onto an image of the given pixel
// dimensions. Coordinates are rounded to the nearest pixel; degenerate
// rectangles are widened to one pixel so downstream consumers never see an
// empty rect.
func PixelRect(b region.BBox, width, height int) image.Rectangle {
	x0 := int(b[0]*float64(width) + 0.5)
	y0 := int(b[1]*float64(height) + 0.5)
	x1 := int(b[2]*float64(width) + 0.5)
	y1 := int(b[3]*float64(height) + 0.5)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return image.Rect(x0, y0, x1, y1)
}

// FitWithinPixelLimit computes working dimensions for an image that must
// stay under maxPixels total. Dimensions already within budget are returned
// unchanged with scale 1. Otherwise both sides are scaled uniformly by
// sqrt(maxPixels*margin/(w*h)) and floored; the margin absorbs rounding so
// the result never exceeds the budget.
func FitWithinPixelLimit(width, height, maxPixels int, margin float64) (int, int, float64) {
	if maxPixels <= 0 || width*height <= maxPixels {
		return width, height, 1.0
	}
	if margin <= 0 || margin > 1 {
		margin = 1.0
	}
	scale := math.Sqrt(float64(maxPixels) * margin / float64(width*height))
	newW := int(float64(width) * scale)
	newH := int(float64(height) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH, scale
}

// Resize scales an image to exact pixel dimensions with Lanczos resampling.
// Used both for the downscale before the external call and the upscale back
// to original resolution afterwards.
func Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// RestoreOriginalSize decodes generated image bytes, resizes them to the
// page's original dimensions, and re-encodes in the given format. The
// returned image always reports exactly targetWidth x targetHeight.
func RestoreOriginalSize(data []byte, targetWidth, targetHeight int, format string) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode generated image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() != targetWidth || b.Dy() != targetHeight {
		img = Resize(img, targetWidth, targetHeight)
	}
	return Encode(img, format)
}

// Decode parses image bytes, reporting the detected format. Standard
// decoders are tried first, then an explicit WebP decode for payloads the
// registered decoders reject.
func Decode(data []byte) (image.Image, string, error) {
	if img, format, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, format, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, "webp", nil
	}
	return nil, "", fmt.Errorf("unknown or unsupported image format")
}

// Encode serializes an image in the given format. Unknown formats fall back
// to PNG, which is lossless and universally accepted by the external
// services.
func Encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 92}); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	case "webp":
		if err := webp.Encode(&buf, img, &webp.Options{Quality: 92}); err != nil {
			return nil, err
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Dimensions reports the pixel dimensions of encoded image bytes.
func Dimensions(data []byte) (int, int, error) {
	img, _, err := Decode(data)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// MimeType maps a filename extension to an image MIME type, defaulting to
// JPEG for unknown extensions.
func MimeType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// FormatForMime maps a MIME type back to an encode format name.
func FormatForMime(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpeg"
	}
}
