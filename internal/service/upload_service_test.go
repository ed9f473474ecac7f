package service

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sitekit/internal/storage"
)

func newTestUploadService(t *testing.T) (*UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewLocalStore(dir, "http://localhost:8080", "/media")
	return NewUploadService(store, 5<<20), dir
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	svc, _ := newTestUploadService(t)

	_, err := svc.Upload([]byte("%PDF-1.4"), "report.pdf", "application/pdf", "post-1", "cover")
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir(), "http://localhost:8080", "/media")
	svc := NewUploadService(store, 16)

	_, err := svc.Upload(make([]byte, 17), "big.png", "image/png", "post-1", "cover")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if !strings.Contains(err.Error(), "MB") {
		t.Fatalf("expected size-specific message, got %q", err.Error())
	}
}

func TestUploadStoresFileAndMintsTokenURL(t *testing.T) {
	svc, dir := newTestUploadService(t)

	result, err := svc.Upload(smallPNG(t), "My Cover Photo.PNG", "image/png", "post-1", "cover")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if !strings.HasPrefix(result.Path, "post-1/cover/") {
		t.Fatalf("expected owner/purpose namespacing, got %q", result.Path)
	}
	if !strings.HasSuffix(result.Path, "-my-cover-photo.png") {
		t.Fatalf("expected sanitized filename, got %q", result.Path)
	}
	if !strings.Contains(result.URL, "?token=") {
		t.Fatalf("expected tokenized public URL, got %q", result.URL)
	}
	if result.Width != 3 || result.Height != 2 {
		t.Fatalf("expected probed dimensions 3x2, got %dx%d", result.Width, result.Height)
	}

	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(result.Path))); err != nil {
		t.Fatalf("expected blob on disk: %v", err)
	}
}

func TestUploadGeneratesOwnerWhenMissing(t *testing.T) {
	svc, _ := newTestUploadService(t)

	result, err := svc.Upload(smallPNG(t), "", "image/png", "", "")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if !strings.HasPrefix(result.Path, "tmp-") {
		t.Fatalf("expected generated temporary owner, got %q", result.Path)
	}
	if !strings.Contains(result.Path, "/general/") {
		t.Fatalf("expected default purpose, got %q", result.Path)
	}
	if !strings.HasSuffix(result.Path, "-file.png") {
		t.Fatalf("expected fallback filename with canonical extension, got %q", result.Path)
	}
}

func TestUploadBoundsFilenameLength(t *testing.T) {
	svc, _ := newTestUploadService(t)

	long := strings.Repeat("a", 200) + ".png"
	result, err := svc.Upload(smallPNG(t), long, "image/png", "post-2", "inline")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	name := result.Path[strings.LastIndex(result.Path, "-")+1:]
	if len(name) > maxUploadNameLen {
		t.Fatalf("expected bounded filename, got %d characters", len(name))
	}
}

func TestUploadBoundsOverlongExtension(t *testing.T) {
	svc, _ := newTestUploadService(t)

	long := "x." + strings.Repeat("a", 100)
	result, err := svc.Upload(smallPNG(t), long, "image/png", "post-2", "inline")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	base := path.Base(result.Path)
	name := base[strings.Index(base, "-")+1:]
	if len(name) > maxUploadNameLen {
		t.Fatalf("expected bounded filename, got %d characters: %q", len(name), name)
	}
	if name == "" {
		t.Fatal("expected a non-empty filename")
	}
}
