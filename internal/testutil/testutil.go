// Package testutil provides helpers shared by package tests.
package testutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestImage returns an encoded solid-color image of the given size.
// Format is "png" or "jpeg".
func TestImage(t *testing.T, width, height int, format string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// WriteTestImage writes an encoded test image into dir and returns its path.
func WriteTestImage(t *testing.T, dir, name string, width, height int, format string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, TestImage(t, width, height, format), 0o644); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
	return path
}

// FindFreePort finds an available TCP port and returns it as a string.
func FindFreePort() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer listener.Close()
	return fmt.Sprintf("%d", listener.Addr().(*net.TCPAddr).Port), nil
}

// WaitForServer polls the /health endpoint until the server responds.
func WaitForServer(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server not ready after %v", timeout)
}
