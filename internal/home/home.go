package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the monkeytranslate home directory.
	DefaultDirName = ".monkeytranslate"

	// UploadsDirName is the subdirectory for original uploaded images.
	UploadsDirName = "uploads"

	// RenderedDirName is the subdirectory for generated translated images.
	RenderedDirName = "rendered"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the monkeytranslate home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.monkeytranslate).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// UploadsPath returns the directory for original uploaded images.
func (d *Dir) UploadsPath() string {
	return filepath.Join(d.path, UploadsDirName)
}

// RenderedPath returns the directory for generated translated images.
func (d *Dir) RenderedPath() string {
	return filepath.Join(d.path, RenderedDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// UploadPath returns the storage path for an uploaded page image.
func (d *Dir) UploadPath(pageID, ext string) string {
	return filepath.Join(d.UploadsPath(), pageID+ext)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.UploadsPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %w", err)
	}
	if err := os.MkdirAll(d.RenderedPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create rendered directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
