package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestText_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("  hello from a text file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Text(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello from a text file" {
		t.Errorf("Text() = %q, want trimmed file content", got)
	}
}

func TestText_UnsupportedFormat(t *testing.T) {
	for _, name := range []string{"image.png", "archive.zip", "noext"} {
		t.Run(name, func(t *testing.T) {
			_, err := Text(filepath.Join(t.TempDir(), name))
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("expected ErrUnsupportedFormat, got %v", err)
			}
		})
	}
}

func TestText_MissingFile(t *testing.T) {
	_, err := Text(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Error("missing .txt file should not classify as unsupported format")
	}
}

func TestText_CaseInsensitiveExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "UPPER.TXT")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Text(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "content" {
		t.Errorf("Text() = %q", got)
	}
}
