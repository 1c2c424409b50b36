// Package storage persists generated artifacts. The generators themselves
// stay I/O-free; the CLI hands their file lists to a Storage implementation.
package storage

import (
	"context"

	"github.com/apiforge/apiforge/internal/model"
)

// Storage abstracts the artifact destination so tests can run against an
// in-memory filesystem.
type Storage interface {
	// Read reads contents from a path.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write writes contents to a path, creating parent directories.
	Write(ctx context.Context, path string, content []byte) error

	// Exists checks if a path exists.
	Exists(ctx context.Context, path string) (bool, error)

	// WriteFiles persists a generated artifact list, honoring the
	// overwrite and backup settings.
	WriteFiles(ctx context.Context, files []model.GeneratedFile, opts WriteOptions) (*WriteReport, error)
}

// WriteOptions controls collision behavior when persisting artifacts.
type WriteOptions struct {
	// Overwrite allows replacing existing files. When false, existing
	// files are skipped and reported.
	Overwrite bool

	// Backup moves an existing file to <path>.bak before overwriting.
	Backup bool
}

// WriteReport summarizes one WriteFiles invocation.
type WriteReport struct {
	Written  []string
	Skipped  []string
	BackedUp []string
}
