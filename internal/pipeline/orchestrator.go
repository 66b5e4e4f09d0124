// Package pipeline sequences the three async stages, extract, translate
// and render, against a page, with per-page per-stage single-flight and a
// generation marker that discards results superseded by a concurrent
// committed mutation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/monkeytranslate/monkeytranslate/internal/edit"
	"github.com/monkeytranslate/monkeytranslate/internal/imgops"
	"github.com/monkeytranslate/monkeytranslate/internal/providers"
	"github.com/monkeytranslate/monkeytranslate/internal/region"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
)

// Stage identifies one pipeline stage for the single-flight guard.
type Stage string

const (
	StageExtract   Stage = "extract"
	StageTranslate Stage = "translate"
	StageRender    Stage = "render"
)

const (
	// DefaultMaxPixels is the generation service's input pixel ceiling.
	DefaultMaxPixels = 20_000_000

	// DefaultSafetyMargin keeps the downscaled image comfortably under the
	// ceiling despite integer rounding.
	DefaultSafetyMargin = 0.9
)

// Config holds orchestrator dependencies.
type Config struct {
	Store      store.Store
	Extractor  providers.Extractor
	Translator providers.Translator
	Renderer   providers.Renderer
	Edits      *edit.Registry
	Logger     *slog.Logger

	// RenderedDir is where rendered image files are written.
	RenderedDir string

	MaxPixels    int
	SafetyMargin float64
}

// Orchestrator runs the pipeline stages. Stages for different pages run
// concurrently; the same stage for the same page is single-flight.
type Orchestrator struct {
	store      store.Store
	extractor  providers.Extractor
	translator providers.Translator
	renderer   providers.Renderer
	edits      *edit.Registry
	logger     *slog.Logger

	renderedDir  string
	maxPixels    int
	safetyMargin float64

	mu       sync.Mutex
	inflight map[string]map[Stage]bool
}

// New creates an orchestrator with the given configuration.
func New(cfg Config) *Orchestrator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = DefaultMaxPixels
	}
	if cfg.SafetyMargin <= 0 || cfg.SafetyMargin > 1 {
		cfg.SafetyMargin = DefaultSafetyMargin
	}
	if cfg.Edits == nil {
		cfg.Edits = edit.NewRegistry()
	}
	return &Orchestrator{
		store:        cfg.Store,
		extractor:    cfg.Extractor,
		translator:   cfg.Translator,
		renderer:     cfg.Renderer,
		edits:        cfg.Edits,
		logger:       cfg.Logger,
		renderedDir:  cfg.RenderedDir,
		maxPixels:    cfg.MaxPixels,
		safetyMargin: cfg.SafetyMargin,
	}
}

// Edits exposes the edit session registry shared with the HTTP layer.
func (o *Orchestrator) Edits() *edit.Registry {
	return o.edits
}

// Extract calls the vision service and replaces the page's entire region
// list with the result. Every returned region gets a fresh id, translated
// text equal to the original, and active status. On any failure the page
// is left unchanged.
func (o *Orchestrator) Extract(ctx context.Context, pageID string) (*store.Page, error) {
	if err := o.begin(pageID, StageExtract); err != nil {
		return nil, err
	}
	defer o.end(pageID, StageExtract)

	page, err := o.store.Get(pageID)
	if err != nil {
		return nil, err
	}
	gen := page.Generation

	imageData, err := os.ReadFile(page.ImagePath)
	if err != nil {
		return nil, &ExtractionError{Err: fmt.Errorf("failed to read page image: %w", err)}
	}

	extracted, err := o.extractor.ExtractRegions(ctx, imageData, page.MimeType)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	regions := make([]region.TextRegion, 0, len(extracted))
	for _, ex := range extracted {
		bbox := ex.BBox.Clamp()
		if err := bbox.Validate(); err != nil {
			o.logger.Warn("dropping region with invalid bbox", "page_id", pageID, "error", err)
			continue
		}
		regions = append(regions, region.TextRegion{
			ID:         uuid.NewString(),
			BBox:       bbox,
			Original:   ex.Text,
			Translated: ex.Text,
			Status:     region.StatusActive,
		})
	}

	updated, err := o.store.Update(pageID, func(p *store.Page) error {
		if p.Generation != gen {
			return fmt.Errorf("extract %s: %w", pageID, ErrSuperseded)
		}
		p.Regions = regions
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("extracted regions", "page_id", pageID, "count", len(regions))
	return updated, nil
}

// Translate sends the active regions' original texts to the translation
// service and writes the translations back positionally. The active subset
// is snapshotted by id at request time; the response is matched against
// that snapshot, never against a re-derived active set, so regions removed
// mid-flight cannot misalign their neighbors.
func (o *Orchestrator) Translate(ctx context.Context, pageID, targetLanguage string) (*store.Page, error) {
	if err := o.begin(pageID, StageTranslate); err != nil {
		return nil, err
	}
	defer o.end(pageID, StageTranslate)

	if targetLanguage == "" {
		return nil, &ValidationError{Msg: "target language is required"}
	}

	page, err := o.store.Get(pageID)
	if err != nil {
		return nil, err
	}

	active := region.Active(page.Regions)
	if len(active) == 0 {
		return nil, &ValidationError{Msg: "page has no active regions to translate"}
	}

	ids := make([]string, len(active))
	texts := make([]string, len(active))
	for i, r := range active {
		ids[i] = r.ID
		texts[i] = r.Original
	}

	translations, err := o.translator.TranslateTexts(ctx, texts, targetLanguage)
	if err != nil {
		return nil, &TranslationError{Err: err}
	}
	if len(translations) != len(texts) {
		return nil, &TranslationError{Err: fmt.Errorf("expected %d translations, got %d", len(texts), len(translations))}
	}

	// Matching by snapshotted id keeps this correct under concurrent
	// mutation: a region removed mid-flight keeps its id and still gets
	// its translation; a page re-extracted mid-flight has all-new ids and
	// absorbs nothing.
	updated, err := o.store.Update(pageID, func(p *store.Page) error {
		for i, id := range ids {
			for j := range p.Regions {
				if p.Regions[j].ID == id {
					p.Regions[j].Translated = translations[i]
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("translated regions", "page_id", pageID, "count", len(texts), "target_language", targetLanguage)
	return updated, nil
}

// Render generates a new image with the changed active regions' translated
// texts composited in place, restores it to the page's original dimensions
// and commits it as the page's rendered image. Any pending inline edit is
// committed first so the render reflects the latest text. On failure the
// previous rendered image is untouched.
func (o *Orchestrator) Render(ctx context.Context, pageID string) (*store.Page, error) {
	if err := o.begin(pageID, StageRender); err != nil {
		return nil, err
	}
	defer o.end(pageID, StageRender)

	// Auto-commit a pending inline edit before snapshotting regions.
	if err := o.edits.ForPage(pageID).Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit pending edit: %w", err)
	}

	page, err := o.store.Get(pageID)
	if err != nil {
		return nil, err
	}
	gen := page.Generation

	changed := region.ChangedActive(page.Regions)
	if len(changed) == 0 {
		return nil, &ValidationError{Msg: "no active regions with translations to render"}
	}

	imageData, err := os.ReadFile(page.ImagePath)
	if err != nil {
		return nil, &RenderError{Kind: RenderGeneric, Err: fmt.Errorf("failed to read page image: %w", err)}
	}

	// Fit under the service's pixel ceiling. The normalized bboxes are
	// untouched; only the pixel rects derived from them use the working
	// dimensions.
	workW, workH, scale := imgops.FitWithinPixelLimit(page.Width, page.Height, o.maxPixels, o.safetyMargin)
	workingData := imageData
	if scale < 1 {
		img, _, err := imgops.Decode(imageData)
		if err != nil {
			return nil, &RenderError{Kind: RenderGeneric, Err: fmt.Errorf("failed to decode page image: %w", err)}
		}
		workingData, err = imgops.Encode(imgops.Resize(img, workW, workH), imgops.FormatForMime(page.MimeType))
		if err != nil {
			return nil, &RenderError{Kind: RenderGeneric, Err: fmt.Errorf("failed to encode downscaled image: %w", err)}
		}
		o.logger.Info("downscaled image for render", "page_id", pageID,
			"original", fmt.Sprintf("%dx%d", page.Width, page.Height),
			"working", fmt.Sprintf("%dx%d", workW, workH))
	}

	replacements := make([]providers.Replacement, len(changed))
	for i, r := range changed {
		replacements[i] = providers.Replacement{
			Original:   r.Original,
			Translated: r.Translated,
			Rect:       imgops.PixelRect(r.BBox, workW, workH),
		}
	}

	generated, err := o.renderer.RenderImage(ctx, workingData, page.MimeType, replacements)
	if err != nil {
		return nil, classifyRender(err)
	}

	restored, err := imgops.RestoreOriginalSize(generated, page.Width, page.Height, imgops.FormatForMime(page.MimeType))
	if err != nil {
		return nil, &RenderError{Kind: RenderGeneric, Err: fmt.Errorf("failed to restore original size: %w", err)}
	}

	renderedPath := filepath.Join(o.renderedDir, fmt.Sprintf("rendered-%s%s", uuid.NewString(), filepath.Ext(page.ImagePath)))
	if err := os.WriteFile(renderedPath, restored, 0o644); err != nil {
		return nil, &RenderError{Kind: RenderGeneric, Err: fmt.Errorf("failed to write rendered image: %w", err)}
	}

	var oldPath string
	updated, err := o.store.Update(pageID, func(p *store.Page) error {
		if p.Generation != gen {
			return fmt.Errorf("render %s: %w", pageID, ErrSuperseded)
		}
		oldPath = p.RenderedPath
		p.RenderedPath = renderedPath
		return nil
	})
	if err != nil {
		os.Remove(renderedPath)
		return nil, err
	}
	if oldPath != "" {
		if rmErr := os.Remove(oldPath); rmErr != nil && !os.IsNotExist(rmErr) {
			o.logger.Warn("failed to remove previous rendered image", "path", oldPath, "error", rmErr)
		}
	}

	o.logger.Info("rendered page", "page_id", pageID, "regions", len(replacements), "path", renderedPath)
	return updated, nil
}

// begin acquires the per-page per-stage single-flight guard.
func (o *Orchestrator) begin(pageID string, stage Stage) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inflight == nil {
		o.inflight = make(map[string]map[Stage]bool)
	}
	stages := o.inflight[pageID]
	if stages == nil {
		stages = make(map[Stage]bool)
		o.inflight[pageID] = stages
	}
	if stages[stage] {
		return fmt.Errorf("%s %s: %w", stage, pageID, ErrStageBusy)
	}
	stages[stage] = true
	return nil
}

func (o *Orchestrator) end(pageID string, stage Stage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if stages := o.inflight[pageID]; stages != nil {
		delete(stages, stage)
		if len(stages) == 0 {
			delete(o.inflight, pageID)
		}
	}
}
