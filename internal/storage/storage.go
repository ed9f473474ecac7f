// Package storage abstracts the blob store behind the media upload gate.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore persists uploaded bytes under a path and returns a public URL
// for them. Implementations mint a long-lived access token at save time and
// embed it in the URL; token rotation and revocation are out of scope.
type BlobStore interface {
	Save(path string, data []byte, contentType string) (string, error)
}

// LocalStore writes blobs to a directory served as static files. The
// contentType is accepted for interface parity with object-store backends
// that persist it as metadata.
type LocalStore struct {
	dir     string
	baseURL string
	urlPath string
}

// NewLocalStore returns a LocalStore rooted at dir, minting URLs under
// baseURL+urlPath.
func NewLocalStore(dir, baseURL, urlPath string) *LocalStore {
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		urlPath: "/" + strings.Trim(urlPath, "/"),
	}
}

// Save writes data under path and returns its tokenized public URL.
func (s *LocalStore) Save(path string, data []byte, contentType string) (string, error) {
	_ = contentType

	full := filepath.Join(s.dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s%s/%s?token=%s", s.baseURL, s.urlPath, path, token), nil
}
