package imgops

import (
	"image"
	"testing"

	"github.com/monkeytranslate/monkeytranslate/internal/region"
	"github.com/monkeytranslate/monkeytranslate/internal/testutil"
)

func TestPixelRect(t *testing.T) {
	t.Run("scales normalized coordinates", func(t *testing.T) {
		got := PixelRect(region.BBox{0.1, 0.2, 0.5, 0.6}, 1000, 500)
		want := image.Rect(100, 100, 500, 300)
		if got != want {
			t.Errorf("PixelRect = %v, want %v", got, want)
		}
	})

	t.Run("rounds to nearest pixel", func(t *testing.T) {
		// 0.333 * 100 = 33.3 rounds down, 0.667 * 100 = 66.7 rounds up.
		got := PixelRect(region.BBox{0.333, 0, 0.667, 1}, 100, 100)
		if got.Min.X != 33 || got.Max.X != 67 {
			t.Errorf("got x range [%d, %d], want [33, 67]", got.Min.X, got.Max.X)
		}
	})

	t.Run("degenerate box widened to one pixel", func(t *testing.T) {
		got := PixelRect(region.BBox{0.5, 0.5, 0.5001, 0.5001}, 10, 10)
		if got.Dx() < 1 || got.Dy() < 1 {
			t.Errorf("got empty rect %v", got)
		}
	})
}

func TestFitWithinPixelLimit(t *testing.T) {
	t.Run("within budget unchanged", func(t *testing.T) {
		w, h, scale := FitWithinPixelLimit(4000, 3000, 20_000_000, 0.9)
		if w != 4000 || h != 3000 || scale != 1.0 {
			t.Errorf("got %dx%d scale %v, want unchanged", w, h, scale)
		}
	})

	t.Run("over budget scales uniformly", func(t *testing.T) {
		w, h, scale := FitWithinPixelLimit(6000, 5000, 20_000_000, 0.9)
		if w != 4647 || h != 3872 {
			t.Errorf("got %dx%d, want 4647x3872", w, h)
		}
		if scale >= 1 {
			t.Errorf("scale = %v, want < 1", scale)
		}
		if w*h > 20_000_000 {
			t.Errorf("result %d pixels exceeds budget", w*h)
		}
	})

	t.Run("aspect ratio preserved", func(t *testing.T) {
		w, h, _ := FitWithinPixelLimit(8000, 4000, 1_000_000, 1.0)
		ratio := float64(w) / float64(h)
		if ratio < 1.99 || ratio > 2.01 {
			t.Errorf("aspect ratio %v drifted from 2.0", ratio)
		}
	})

	t.Run("zero max pixels disables fitting", func(t *testing.T) {
		w, h, scale := FitWithinPixelLimit(6000, 5000, 0, 0.9)
		if w != 6000 || h != 5000 || scale != 1.0 {
			t.Errorf("got %dx%d scale %v, want unchanged", w, h, scale)
		}
	})

	t.Run("never returns zero dimensions", func(t *testing.T) {
		w, h, _ := FitWithinPixelLimit(10000, 1, 4, 1.0)
		if w < 1 || h < 1 {
			t.Errorf("got %dx%d", w, h)
		}
	})
}

func TestResize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	out := Resize(img, 40, 20)
	if b := out.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("got %dx%d, want 40x20", b.Dx(), b.Dy())
	}
}

func TestRestoreOriginalSize(t *testing.T) {
	t.Run("upscales to target", func(t *testing.T) {
		small := testutil.TestImage(t, 40, 20, "png")
		restored, err := RestoreOriginalSize(small, 100, 50, "png")
		if err != nil {
			t.Fatalf("RestoreOriginalSize: %v", err)
		}
		w, h, err := Dimensions(restored)
		if err != nil {
			t.Fatalf("Dimensions: %v", err)
		}
		if w != 100 || h != 50 {
			t.Errorf("got %dx%d, want 100x50", w, h)
		}
	})

	t.Run("already at target", func(t *testing.T) {
		data := testutil.TestImage(t, 60, 30, "jpeg")
		restored, err := RestoreOriginalSize(data, 60, 30, "jpeg")
		if err != nil {
			t.Fatalf("RestoreOriginalSize: %v", err)
		}
		w, h, err := Dimensions(restored)
		if err != nil {
			t.Fatalf("Dimensions: %v", err)
		}
		if w != 60 || h != 30 {
			t.Errorf("got %dx%d, want 60x30", w, h)
		}
	})

	t.Run("invalid data", func(t *testing.T) {
		if _, err := RestoreOriginalSize([]byte("not an image"), 10, 10, "png"); err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestDecodeEncode(t *testing.T) {
	for _, format := range []string{"png", "jpeg"} {
		t.Run(format, func(t *testing.T) {
			data := testutil.TestImage(t, 20, 10, format)
			img, detected, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if detected != format {
				t.Errorf("detected format %q, want %q", detected, format)
			}
			out, err := Encode(img, format)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if len(out) == 0 {
				t.Error("empty encode output")
			}
		})
	}

	t.Run("unknown format falls back to png", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		out, err := Encode(img, "tiff")
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if _, format, err := Decode(out); err != nil || format != "png" {
			t.Errorf("fallback produced %q (%v), want png", format, err)
		}
	})
}

func TestDimensions(t *testing.T) {
	data := testutil.TestImage(t, 123, 45, "png")
	w, h, err := Dimensions(data)
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 123 || h != 45 {
		t.Errorf("got %dx%d, want 123x45", w, h)
	}
	if _, _, err := Dimensions([]byte("garbage")); err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestMimeType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"page.png", "image/png"},
		{"page.PNG", "image/png"},
		{"page.gif", "image/gif"},
		{"page.webp", "image/webp"},
		{"page.jpg", "image/jpeg"},
		{"page.jpeg", "image/jpeg"},
		{"page.bmp", "image/jpeg"},
	}
	for _, tc := range tests {
		if got := MimeType(tc.filename); got != tc.want {
			t.Errorf("MimeType(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestFormatForMime(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/png", "png"},
		{"image/gif", "gif"},
		{"image/webp", "webp"},
		{"image/jpeg", "jpeg"},
		{"application/octet-stream", "jpeg"},
	}
	for _, tc := range tests {
		if got := FormatForMime(tc.mime); got != tc.want {
			t.Errorf("FormatForMime(%q) = %q, want %q", tc.mime, got, tc.want)
		}
	}
}
