// Package local writes exported files into a directory on disk.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"docdesk/internal/port"
)

type localStorage struct {
	root string
}

// NewLocalStorage creates an ObjectStorage rooted at dir, creating it if
// needed.
func NewLocalStorage(dir string) (port.ObjectStorage, error) {
	if dir == "" {
		return nil, errors.New("export dir is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving export dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}
	return &localStorage{root: abs}, nil
}

// path maps an object key to a file under root, rejecting keys that would
// escape it.
func (s *localStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

// Upload writes to a temporary file and renames it into place, so a failed
// write never leaves a partial file under the final name.
func (s *localStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dst, err := s.path(input.Key)
	if err != nil {
		return nil, fmt.Errorf("local upload: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("local upload: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("local upload: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := io.Copy(tmp, input.Body); err != nil {
		_ = tmp.Close()
		cleanup()
		return nil, fmt.Errorf("local upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return nil, fmt.Errorf("local upload: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		cleanup()
		return nil, fmt.Errorf("local upload: %w", err)
	}
	return &port.UploadOutput{Location: dst}, nil
}

func (s *localStorage) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return fmt.Errorf("local delete: %w", err)
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("local delete: %w", err)
	}
	return nil
}
