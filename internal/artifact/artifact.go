// Package artifact stores rendered exercise pages on disk and looks them up
// again for download.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/gapfill/internal/metrics"
)

const (
	namePrefix = "gapfill_"
	nameSuffix = ".html"
)

// ErrNotFound is returned when a referenced artifact does not exist inside
// the artifact directory.
var ErrNotFound = errors.New("artifact not found")

// Artifact is a saved page.
type Artifact struct {
	// Name is the base file name, the only part clients ever send back.
	Name string
	Path string
}

// Store keeps artifacts in a single flat directory.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating it if needed. An empty dir
// uses gapfill/ under the system temp directory.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "gapfill")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve artifact dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Store{dir: abs}, nil
}

// Dir returns the absolute artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes html under a fresh unique name.
func (s *Store) Save(html string) (Artifact, error) {
	name := namePrefix + uuid.NewString() + nameSuffix
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return Artifact{}, fmt.Errorf("write artifact: %w", err)
	}
	metrics.IncArtifactWritten()
	return Artifact{Name: name, Path: path}, nil
}

// Resolve maps a client reference to a file inside the store. Only the base
// name of ref is used, so absolute paths returned by Save and bare names
// both work while anything outside the directory is unreachable.
func (s *Store) Resolve(ref string) (string, error) {
	name := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(ref, "\\", "/")))
	if name == "/" || name == "." || name == ".." || !strings.HasSuffix(name, nameSuffix) {
		return "", ErrNotFound
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrNotFound
	}
	return path, nil
}

// Read returns the content of the referenced artifact.
func (s *Store) Read(ref string) ([]byte, error) {
	path, err := s.Resolve(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return data, nil
}

// Prune removes artifacts last modified before now minus maxAge and returns
// how many were deleted. Files the store did not create are left alone.
func (s *Store) Prune(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("list artifacts: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, namePrefix) || !strings.HasSuffix(name, nameSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err == nil {
			removed++
		}
	}
	return removed, nil
}
