// internal/media/staging.go
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Staging holds uploaded files on local disk until the sync moves them to the
// media host. A file reference is a path relative to the staging root.
type Staging struct {
	root string
}

func NewStaging(root string) (*Staging, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir %s: %w", root, err)
	}
	return &Staging{root: root}, nil
}

// Save writes the uploaded content under a unique name and returns its
// file reference.
func (s *Staging) Save(originalName string, r io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	ref := fmt.Sprintf("%s_%d%s", uuid.NewString(), time.Now().Unix(), ext)

	f, err := os.Create(filepath.Join(s.root, ref))
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", originalName, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("stage %s: %w", originalName, err)
	}
	return ref, nil
}

// Open returns the staged file for reading.
func (s *Staging) Open(ref string) (io.ReadCloser, error) {
	p, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// Remove deletes a staged file once it has been synced.
func (s *Staging) Remove(ref string) error {
	p, err := s.resolve(ref)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (s *Staging) resolve(ref string) (string, error) {
	clean := filepath.Clean(ref)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid file reference %q", ref)
	}
	return filepath.Join(s.root, clean), nil
}
