package datasheet

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"
)

func TestExtractTextPlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	content := "LM358 operational amplifier\nSupply voltage up to 32V"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := ExtractText(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != content {
		t.Errorf("ExtractText() = %q, want %q", got, content)
	}
}

func TestExtractTextMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("# LM358\nfeatures"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := ExtractText(path); err != nil {
		t.Errorf("markdown should be accepted: %v", err)
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.docx")
	if err := os.WriteFile(path, []byte("binary"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := ExtractText(path); err == nil {
		t.Error("unsupported extension should be rejected")
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	if _, err := ExtractText(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("missing file should be rejected")
	}
}

func TestExtractTextInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(path, []byte{'o', 'k', 0xff, 0xfe}, 0600); err != nil {
		t.Fatal(err)
	}
	got, err := ExtractText(path)
	if err != nil {
		t.Fatal(err)
	}
	if !utf8.ValidString(got) {
		t.Errorf("output should be valid utf-8: %q", got)
	}
}
