package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/monkeytranslate/monkeytranslate/internal/region"
)

func newTestPage(id string, uploaded time.Time) *Page {
	return &Page{
		ID:       id,
		Filename: id + ".png",
		MimeType: "image/png",
		Width:    800,
		Height:   600,
		Regions: []region.TextRegion{
			{ID: "r1", BBox: region.BBox{0.1, 0.1, 0.4, 0.2}, Original: "Hello", Translated: "Hello", Status: region.StatusActive},
		},
		UploadedAt: uploaded,
	}
}

func TestMemoryStoreGetPut(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.Get("missing"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("Get err = %v, want ErrPageNotFound", err)
	}

	page := newTestPage("p1", time.Now())
	if err := s.Put(page); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get("p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "p1" || got.Filename != "p1.png" {
		t.Errorf("unexpected page: %+v", got)
	}

	if err := s.Put(&Page{}); err == nil {
		t.Error("Put with empty id should fail")
	}
}

func TestMemoryStoreCopiesAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	page := newTestPage("p1", time.Now())
	if err := s.Put(page); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Mutating the original after Put must not affect stored state.
	page.Regions[0].Translated = "mutated after put"

	got, err := s.Get("p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Regions[0].Translated != "Hello" {
		t.Error("Put did not copy the page")
	}

	// Mutating a Get result must not affect stored state either.
	got.Regions[0].Translated = "mutated after get"
	again, err := s.Get("p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Regions[0].Translated != "Hello" {
		t.Error("Get handed out aliased state")
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Put(newTestPage("p1", time.Now())); err != nil {
		t.Fatalf("Put: %v", err)
	}

	t.Run("advances generation", func(t *testing.T) {
		before, _ := s.Get("p1")
		updated, err := s.Update("p1", func(p *Page) error {
			p.Regions[0].Translated = "Hola"
			return nil
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.Generation != before.Generation+1 {
			t.Errorf("generation = %d, want %d", updated.Generation, before.Generation+1)
		}
		if updated.Regions[0].Translated != "Hola" {
			t.Errorf("translated = %q", updated.Regions[0].Translated)
		}
	})

	t.Run("failed update leaves page untouched", func(t *testing.T) {
		before, _ := s.Get("p1")
		_, err := s.Update("p1", func(p *Page) error {
			p.Regions = nil
			return fmt.Errorf("boom")
		})
		if err == nil {
			t.Fatal("expected error")
		}
		after, _ := s.Get("p1")
		if after.Generation != before.Generation || len(after.Regions) != len(before.Regions) {
			t.Error("page changed despite failed update")
		}
	})

	t.Run("unknown page", func(t *testing.T) {
		_, err := s.Update("missing", func(*Page) error { return nil })
		if !errors.Is(err, ErrPageNotFound) {
			t.Errorf("err = %v, want ErrPageNotFound", err)
		}
	})
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	page := newTestPage("p1", time.Now())
	page.ImagePath = "/tmp/p1.png"
	if err := s.Put(page); err != nil {
		t.Fatalf("Put: %v", err)
	}

	removed, err := s.Delete("p1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed.ImagePath != "/tmp/p1.png" {
		t.Errorf("removed copy lost fields: %+v", removed)
	}
	if _, err := s.Get("p1"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("page still present after delete")
	}
	if _, err := s.Delete("p1"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("second delete err = %v, want ErrPageNotFound", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		if err := s.Put(newTestPage(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Put %s: %v", id, err)
		}
	}

	pages := s.List()
	if len(pages) != 3 {
		t.Fatalf("len = %d, want 3", len(pages))
	}
	wantOrder := []string{"new", "mid", "old"}
	for i, want := range wantOrder {
		if pages[i].ID != want {
			t.Errorf("pages[%d].ID = %q, want %q", i, pages[i].ID, want)
		}
	}
}

func TestPageClone(t *testing.T) {
	var nilPage *Page
	if nilPage.Clone() != nil {
		t.Error("nil clone should be nil")
	}

	p := newTestPage("p1", time.Now())
	cp := p.Clone()
	cp.Regions[0].Translated = "changed"
	if p.Regions[0].Translated == "changed" {
		t.Error("clone shares region backing array")
	}
}

func TestPageJSONRenderedImageURL(t *testing.T) {
	p := newTestPage("p1", time.Now())

	t.Run("absent before render", func(t *testing.T) {
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(data), "rendered_image_url") {
			t.Errorf("unrendered page advertises a rendered image: %s", data)
		}
	})

	t.Run("present after render", func(t *testing.T) {
		p.RenderedPath = "/tmp/rendered-abc.png"
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var out map[string]any
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got := out["rendered_image_url"]; got != "/api/pages/p1/rendered-image" {
			t.Errorf("rendered_image_url = %v", got)
		}
		if _, ok := out["RenderedPath"]; ok {
			t.Error("disk path leaked into JSON")
		}
	})
}

func TestPageRendered(t *testing.T) {
	p := newTestPage("p1", time.Now())
	if p.Rendered() {
		t.Error("fresh page should not be rendered")
	}
	p.RenderedPath = "/tmp/rendered.png"
	if !p.Rendered() {
		t.Error("page with rendered path should report rendered")
	}
}
