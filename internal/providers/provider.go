// Package providers contains clients for the external AI services the
// pipeline delegates to: vision text extraction, text translation, and
// image generation. The services are opaque collaborators; this package is
// responsible only for honoring their wire contracts and classifying their
// failures.
package providers

import (
	"context"
	"errors"
	"image"

	"github.com/monkeytranslate/monkeytranslate/internal/region"
)

// ErrImageTooLarge is returned when the generation service rejects an input
// image for exceeding its pixel ceiling, even after downscaling. Callers
// surface this as a distinct, user-actionable error category.
var ErrImageTooLarge = errors.New("input image exceeds the service pixel limit")

// ExtractedRegion is one text block reported by the vision service, with a
// bounding box normalized to [0, 1].
type ExtractedRegion struct {
	Text string      `json:"text"`
	BBox region.BBox `json:"bbox"`
}

// Replacement is one positional text substitution instruction for the image
// generation service. Rect is in the pixel space of the image actually sent
// to the service (i.e. post-downscale dimensions).
type Replacement struct {
	Original   string
	Translated string
	Rect       image.Rectangle
}

// Extractor detects text regions in an image.
type Extractor interface {
	ExtractRegions(ctx context.Context, imageData []byte, mimeType string) ([]ExtractedRegion, error)
}

// Translator translates an ordered list of strings. Implementations must
// return one translation per input, position-correspondent; length
// mismatches are rejected by the caller.
type Translator interface {
	TranslateTexts(ctx context.Context, texts []string, targetLanguage string) ([]string, error)
}

// Renderer generates a new image with the replacement texts composited in
// place of the originals.
type Renderer interface {
	RenderImage(ctx context.Context, imageData []byte, mimeType string, replacements []Replacement) ([]byte, error)
}
