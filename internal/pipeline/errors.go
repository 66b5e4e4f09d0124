package pipeline

import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/monkeytranslate/monkeytranslate/internal/providers"
)

var (
	// ErrStageBusy indicates the stage is already in flight for the page.
	ErrStageBusy = errors.New("stage already in flight for this page")

	// ErrSuperseded indicates the page was rewritten by another committed
	// operation while this one was in flight; the stale result was
	// discarded.
	ErrSuperseded = errors.New("superseded by a newer operation")
)

// ExtractionError wraps a vision service failure or malformed extraction
// output. The page's existing regions are preserved.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return fmt.Sprintf("extraction failed: %v", e.Err) }
func (e *ExtractionError) Unwrap() error { return e.Err }

// TranslationError wraps a translation service failure or a
// length-mismatched response. No partial writes happen on failure.
type TranslationError struct {
	Err error
}

func (e *TranslationError) Error() string { return fmt.Sprintf("translation failed: %v", e.Err) }
func (e *TranslationError) Unwrap() error { return e.Err }

// RenderKind classifies render failures into user-actionable categories.
type RenderKind string

const (
	RenderNetwork  RenderKind = "network"
	RenderTooLarge RenderKind = "image_too_large"
	RenderGeneric  RenderKind = "generic"
)

// RenderError wraps an image generation failure. The page's previous
// rendered image, if any, is untouched.
type RenderError struct {
	Kind RenderKind
	Err  error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render failed (%s): %v", e.Kind, e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// ValidationError indicates the operation's preconditions were not met,
// e.g. rendering with no changed active regions.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// classifyRender sorts a render failure into the taxonomy: the service's
// pixel-limit rejection, transport-level failures, or everything else with
// the raw detail preserved for diagnostics.
func classifyRender(err error) *RenderError {
	if errors.Is(err, providers.ErrImageTooLarge) {
		return &RenderError{Kind: RenderTooLarge, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &RenderError{Kind: RenderNetwork, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &RenderError{Kind: RenderNetwork, Err: err}
	}
	return &RenderError{Kind: RenderGeneric, Err: err}
}
