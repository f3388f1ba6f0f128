package manifestfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mateuszmigas/update-beacon/internal/config"
	"github.com/mateuszmigas/update-beacon/internal/domain/manifest"
)

// Repository defines persistence operations for the update manifest.
type Repository interface {
	Load(ctx context.Context) (*manifest.Manifest, error)
	Save(ctx context.Context, m *manifest.Manifest) error
}

// FileRepository persists the manifest as indented JSON on disk. The on-disk
// copy is what gets uploaded to the release, so the encoding must match the
// published document byte for byte.
type FileRepository struct {
	// path is the filesystem location of the manifest file.
	path string
	// mu protects concurrent access to the manifest file.
	mu sync.Mutex
}

// ErrNotFound is returned when the manifest file does not exist yet.
var ErrNotFound = errors.New("manifest not found")

// NewFileRepository creates a repository that reads/writes JSON at the
// provided path. An empty path means the canonical manifest filename in the
// current working directory.
func NewFileRepository(path string) *FileRepository {
	if path == "" {
		path = manifest.Filename
	}

	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the manifest from disk.
func (r *FileRepository) Load(_ context.Context) (*manifest.Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read manifest file: %w", err)
	}

	m, err := manifest.Decode(bytes.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("decode manifest file: %w", err)
	}

	return m, nil
}

// Save writes the manifest to disk.
func (r *FileRepository) Save(_ context.Context, m *manifest.Manifest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := m.Encode()
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write manifest file: %w", err)
	}

	return nil
}
