// Package imaging resolves schematic image files into transport-ready packages.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"

	"selene/internal/config"
)

// Package is a schematic image prepared for the model endpoint. When Ready is
// false, Error holds the reason and Encoded is empty.
type Package struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Encoded  string `json:"encoded_image,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Ready    bool   `json:"ready"`
	Error    string `json:"error,omitempty"`
}

// Loader validates and encodes schematic images.
type Loader struct {
	maxBytes   int64
	extensions map[string]bool
	logger     *zap.Logger
}

// NewLoader creates a loader with the limits from cfg.
func NewLoader(cfg *config.FilesConfig, logger *zap.Logger) *Loader {
	exts := make(map[string]bool, len(cfg.ImageExtensions))
	for _, e := range cfg.ImageExtensions {
		exts[strings.ToLower(e)] = true
	}
	return &Loader{
		maxBytes:   cfg.MaxBytes(),
		extensions: exts,
		logger:     logger,
	}
}

// LoadPackage reads, validates, and base64-encodes the image at path. It never
// returns an error; failures produce a package with Ready set to false and a
// human-readable Error.
func (l *Loader) LoadPackage(path string) *Package {
	pkg := &Package{
		Path:     path,
		Filename: filepath.Base(path),
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !l.extensions[ext] {
		pkg.Error = fmt.Sprintf("unsupported image format: %s", ext)
		return pkg
	}

	info, err := os.Stat(path)
	if err != nil {
		pkg.Error = fmt.Sprintf("schematic file not found: %s", path)
		return pkg
	}
	if info.Size() > l.maxBytes {
		pkg.Error = fmt.Sprintf("schematic file too large: %.1fMB", float64(info.Size())/(1024*1024))
		return pkg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		pkg.Error = fmt.Sprintf("failed to read schematic: %v", err)
		return pkg
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		pkg.Error = fmt.Sprintf("invalid image data: %v", err)
		return pkg
	}
	pkg.Width = cfg.Width
	pkg.Height = cfg.Height

	pkg.Encoded = base64.StdEncoding.EncodeToString(data)
	pkg.Ready = true
	l.logger.Debug("image package ready",
		zap.String("file", pkg.Filename),
		zap.Int("width", pkg.Width),
		zap.Int("height", pkg.Height),
		zap.Int("encoded_len", len(pkg.Encoded)),
	)
	return pkg
}
