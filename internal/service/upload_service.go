package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/sitekit/internal/storage"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedFileType = errors.New("file type is not allowed")
	ErrFileTooLarge        = errors.New("file exceeds the size limit")
)

// Allowed upload MIME types mapped to a canonical extension used when the
// original filename carries none.
var allowedUploadTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

const maxUploadNameLen = 64

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// UploadResult describes a stored blob. Width and Height are zero when the
// image could not be decoded.
type UploadResult struct {
	URL    string `json:"url"`
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// UploadService is the media upload gate: it validates type and size,
// sanitizes the filename, builds a collision-resistant storage path and
// hands the bytes to the blob store.
type UploadService struct {
	store    storage.BlobStore
	maxBytes int64
}

// NewUploadService creates an UploadService instance.
func NewUploadService(store storage.BlobStore, maxBytes int64) *UploadService {
	return &UploadService{store: store, maxBytes: maxBytes}
}

// MaxBytes returns the configured upload size ceiling.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload validates and stores one file. The path is namespaced by a logical
// owner id and a purpose tag plus a timestamp; owner falls back to a
// generated temporary id when the caller has none yet.
func (s *UploadService) Upload(data []byte, filename, contentType, owner, purpose string) (*UploadResult, error) {
	ext, ok := allowedUploadTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, ErrUnsupportedFileType
	}

	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d MB", ErrFileTooLarge, s.maxBytes>>20)
	}

	name := sanitizeFilename(filename, ext)
	owner = sanitizePathSegment(owner)
	if owner == "" {
		owner = "tmp-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	purpose = sanitizePathSegment(purpose)
	if purpose == "" {
		purpose = "general"
	}

	path := fmt.Sprintf("%s/%s/%d-%s", owner, purpose, time.Now().Unix(), name)

	url, err := s.store.Save(path, data, contentType)
	if err != nil {
		return nil, err
	}

	width, height := probeImageSize(data)
	return &UploadResult{URL: url, Path: path, Width: width, Height: height}, nil
}

func sanitizeFilename(filename, fallbackExt string) string {
	base := strings.ToLower(strings.TrimSpace(filepath.Base(filename)))
	base = unsafeNameChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")

	if base == "" {
		return "file" + fallbackExt
	}

	if len(base) > maxUploadNameLen {
		ext := filepath.Ext(base)
		if len(ext) >= maxUploadNameLen {
			// Degenerate extension longer than the whole budget; cut the
			// name itself and leave room for the fallback extension.
			base = strings.Trim(base[:maxUploadNameLen-len(fallbackExt)], "-.")
		} else {
			stem := base[:maxUploadNameLen-len(ext)]
			base = strings.Trim(stem, "-.") + ext
		}
	}

	if filepath.Ext(base) == "" {
		base += fallbackExt
	}
	return base
}

func sanitizePathSegment(segment string) string {
	segment = strings.ToLower(strings.TrimSpace(segment))
	segment = unsafeNameChars.ReplaceAllString(segment, "-")
	return strings.Trim(segment, "-.")
}

func probeImageSize(data []byte) (int, int) {
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return config.Width, config.Height
}
