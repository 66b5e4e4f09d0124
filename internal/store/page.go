// Package store holds the page aggregate and its repository. All mutation
// of a page's region list flows through Update so the store is the single
// serialization point per page.
package store

import (
	"encoding/json"
	"time"

	"github.com/monkeytranslate/monkeytranslate/internal/region"
)

// Page is one uploaded image and its extracted text regions. The page
// exclusively owns the files behind ImagePath and RenderedPath; they are
// released when the page is deleted.
type Page struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`

	// Regions is ordered by extraction order. It is fully replaced by the
	// extract stage and element-wise updated by everything else.
	Regions []region.TextRegion `json:"regions"`

	// ImagePath is the original upload on disk.
	ImagePath string `json:"-"`

	// RenderedPath points at the most recent successful render, empty until
	// the first one. A failed render never touches it.
	RenderedPath string `json:"-"`

	// MimeType of the original upload.
	MimeType string `json:"mime_type"`

	// Width and Height are the original pixel dimensions, captured at
	// upload time. Rendered output is always restored to these.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Generation advances on every committed mutation. Stage operations
	// capture it at start and refuse to commit against a page that another
	// operation has since rewritten.
	Generation uint64 `json:"generation"`

	UploadedAt time.Time `json:"uploaded_at"`
}

// Rendered reports whether the page has a rendered image.
func (p *Page) Rendered() bool {
	return p.RenderedPath != ""
}

// RenderedImageURL returns the API route serving the rendered image, or
// empty until the first successful render.
func (p *Page) RenderedImageURL() string {
	if !p.Rendered() {
		return ""
	}
	return "/api/pages/" + p.ID + "/rendered-image"
}

// MarshalJSON includes the rendered-image URL so API consumers can tell a
// render has succeeded without probing the image route. The disk paths
// themselves stay server-local.
func (p *Page) MarshalJSON() ([]byte, error) {
	type alias Page
	return json.Marshal(struct {
		*alias
		RenderedImageURL string `json:"rendered_image_url,omitempty"`
	}{
		alias:            (*alias)(p),
		RenderedImageURL: p.RenderedImageURL(),
	})
}

// Clone returns a deep copy. The store hands out and accepts only clones so
// callers can never alias stored state.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Regions = append([]region.TextRegion(nil), p.Regions...)
	return &cp
}
