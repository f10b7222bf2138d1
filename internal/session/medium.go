package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fjordlane/counterpoint/internal/errors"
)

// Medium is the external key-value blob store the session collection is
// serialized into. Implementations hold exactly one value: the whole
// collection. It is read on startup and rewritten wholesale on every
// upsert or remove.
type Medium interface {
	// Read returns the serialized collection.
	// Returns errors.ErrSessionNotFound if nothing has been written yet.
	Read() ([]byte, error)

	// Write replaces the serialized collection.
	Write(data []byte) error
}

// FileMedium stores the blob in a single file on the local filesystem.
// Writes go through a temp file and rename so the target is never left in a
// partially-written state.
type FileMedium struct {
	path string
	mu   sync.Mutex
}

// NewFileMedium creates a FileMedium at the given path. The parent directory
// is created if it doesn't exist.
func NewFileMedium(path string) (*FileMedium, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}
	return &FileMedium{path: path}, nil
}

// Path returns the file location backing this medium.
func (fm *FileMedium) Path() string {
	return fm.path
}

// Read returns the file contents.
func (fm *FileMedium) Read() ([]byte, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	data, err := os.ReadFile(fm.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}
	return data, nil
}

// Write replaces the file contents using atomic write.
func (fm *FileMedium) Write(data []byte) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	return atomicWriteFile(fm.path, data, 0644)
}

// atomicWriteFile writes data to a file atomically by writing to a temporary
// file first, then renaming. This ensures the target file is never in a
// partially-written state.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
