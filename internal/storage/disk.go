// Package storage keeps attachment bytes on the local filesystem under
// opaque generated names. Metadata lives in the stored_file table; this
// package only moves bytes.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Disk stores files under a single base directory.
type Disk struct {
	baseDir string
}

// NewDisk creates the base directory if needed and returns the store.
func NewDisk(baseDir string) (*Disk, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Disk{baseDir: baseDir}, nil
}

// Save writes content under a fresh uuid-based name, preserving the
// original extension, and returns the stored name and byte count.
func (d *Disk) Save(originalName string, content io.Reader) (storedName string, size int64, err error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	storedName = uuid.NewString() + ext

	f, err := os.Create(filepath.Join(d.baseDir, storedName))
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	size, err = io.Copy(f, content)
	if err != nil {
		_ = os.Remove(f.Name())
		return "", 0, err
	}
	return storedName, size, nil
}

// Open returns a reader over the stored file. The caller closes it.
func (d *Disk) Open(storedName string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.baseDir, storedName))
}

// Remove deletes the stored file. Removing an absent file is not an error.
func (d *Disk) Remove(storedName string) error {
	err := os.Remove(filepath.Join(d.baseDir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
