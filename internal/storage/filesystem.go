package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/apiforge/apiforge/internal/model"
)

// FilesystemStorage implements Storage on an afero filesystem rooted at a
// base path.
type FilesystemStorage struct {
	fs       afero.Fs
	basePath string
}

// NewFilesystemStorage creates a storage adapter over the OS filesystem.
func NewFilesystemStorage(basePath string) *FilesystemStorage {
	return &FilesystemStorage{fs: afero.NewOsFs(), basePath: basePath}
}

// NewMemoryStorage creates a storage adapter over an in-memory filesystem,
// for tests and dry runs.
func NewMemoryStorage(basePath string) *FilesystemStorage {
	return &FilesystemStorage{fs: afero.NewMemMapFs(), basePath: basePath}
}

func (s *FilesystemStorage) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.basePath, filepath.FromSlash(path))
}

// Read reads contents from a path.
func (s *FilesystemStorage) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := afero.ReadFile(s.fs, s.resolvePath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}

// Write writes contents to a path, creating parent directories.
func (s *FilesystemStorage) Write(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath := s.resolvePath(path)
	if err := s.fs.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(s.fs, fullPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Exists checks if a path exists.
func (s *FilesystemStorage) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return afero.Exists(s.fs, s.resolvePath(path))
}

// WriteFiles persists an artifact list in order. Existing files are skipped
// unless Overwrite is set; with Backup, the previous content is moved to
// <path>.bak before being replaced.
func (s *FilesystemStorage) WriteFiles(ctx context.Context, files []model.GeneratedFile, opts WriteOptions) (*WriteReport, error) {
	report := &WriteReport{}
	for _, file := range files {
		exists, err := s.Exists(ctx, file.Path)
		if err != nil {
			return report, err
		}
		if exists {
			if !opts.Overwrite {
				report.Skipped = append(report.Skipped, file.Path)
				continue
			}
			if opts.Backup {
				previous, err := s.Read(ctx, file.Path)
				if err != nil {
					return report, err
				}
				if err := s.Write(ctx, file.Path+".bak", previous); err != nil {
					return report, err
				}
				report.BackedUp = append(report.BackedUp, file.Path)
			}
		}
		if err := s.Write(ctx, file.Path, []byte(file.Content)); err != nil {
			return report, err
		}
		report.Written = append(report.Written, file.Path)
	}
	return report, nil
}

// Ensure FilesystemStorage implements Storage.
var _ Storage = (*FilesystemStorage)(nil)
