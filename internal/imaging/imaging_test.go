package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"selene/internal/config"
)

func testLoader(t *testing.T) *Loader {
	t.Helper()
	cfg := &config.FilesConfig{
		MaxSizeMB:       50,
		ImageExtensions: []string{".png", ".jpg", ".jpeg", ".bmp"},
	}
	return NewLoader(cfg, zap.NewNop())
}

func writeTestPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	path := filepath.Join(dir, "schematic.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPackage(t *testing.T) {
	loader := testLoader(t)
	path := writeTestPNG(t, t.TempDir(), 32, 24)

	pkg := loader.LoadPackage(path)
	if !pkg.Ready {
		t.Fatalf("package not ready: %s", pkg.Error)
	}
	if pkg.Width != 32 || pkg.Height != 24 {
		t.Errorf("dimensions = %dx%d, want 32x24", pkg.Width, pkg.Height)
	}
	if pkg.Filename != "schematic.png" {
		t.Errorf("filename = %q", pkg.Filename)
	}
	if _, err := base64.StdEncoding.DecodeString(pkg.Encoded); err != nil {
		t.Errorf("encoded image is not valid base64: %v", err)
	}
}

func TestLoadPackageUnsupportedExtension(t *testing.T) {
	loader := testLoader(t)
	pkg := loader.LoadPackage("board.svg")
	if pkg.Ready {
		t.Fatal("svg should be rejected")
	}
	if !strings.Contains(pkg.Error, "unsupported image format") {
		t.Errorf("unexpected error: %q", pkg.Error)
	}
}

func TestLoadPackageMissingFile(t *testing.T) {
	loader := testLoader(t)
	pkg := loader.LoadPackage(filepath.Join(t.TempDir(), "nope.png"))
	if pkg.Ready {
		t.Fatal("missing file should be rejected")
	}
	if !strings.Contains(pkg.Error, "not found") {
		t.Errorf("unexpected error: %q", pkg.Error)
	}
}

func TestLoadPackageTooLarge(t *testing.T) {
	cfg := &config.FilesConfig{MaxSizeMB: 0, ImageExtensions: []string{".png"}}
	loader := NewLoader(cfg, zap.NewNop())
	path := writeTestPNG(t, t.TempDir(), 8, 8)

	pkg := loader.LoadPackage(path)
	if pkg.Ready {
		t.Fatal("oversized file should be rejected")
	}
	if !strings.Contains(pkg.Error, "too large") {
		t.Errorf("unexpected error: %q", pkg.Error)
	}
}

func TestLoadPackageCorruptData(t *testing.T) {
	loader := testLoader(t)
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not a png"), 0600); err != nil {
		t.Fatal(err)
	}
	pkg := loader.LoadPackage(path)
	if pkg.Ready {
		t.Fatal("corrupt image should be rejected")
	}
	if !strings.Contains(pkg.Error, "invalid image data") {
		t.Errorf("unexpected error: %q", pkg.Error)
	}
}
