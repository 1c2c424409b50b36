package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiforge/apiforge/internal/model"
)

func TestFilesystemStorage_ReadWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage("out")

	require.NoError(t, store.Write(ctx, "docs/openapi.json", []byte("{}")))

	exists, err := store.Exists(ctx, "docs/openapi.json")
	require.NoError(t, err)
	assert.True(t, exists)

	content, err := store.Read(ctx, "docs/openapi.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), content)

	_, err = store.Read(ctx, "missing.txt")
	assert.Error(t, err)
}

func TestFilesystemStorage_WriteFiles(t *testing.T) {
	ctx := context.Background()
	files := []model.GeneratedFile{
		{Path: "src/main.ts", Content: "v1", Type: model.FileSource},
		{Path: "package.json", Content: "v1", Type: model.FileConfig},
	}

	t.Run("fresh tree writes everything", func(t *testing.T) {
		store := NewMemoryStorage("out")
		report, err := store.WriteFiles(ctx, files, WriteOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/main.ts", "package.json"}, report.Written)
		assert.Empty(t, report.Skipped)
	})

	t.Run("existing files are skipped without overwrite", func(t *testing.T) {
		store := NewMemoryStorage("out")
		require.NoError(t, store.Write(ctx, "src/main.ts", []byte("original")))

		report, err := store.WriteFiles(ctx, files, WriteOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/main.ts"}, report.Skipped)
		assert.Equal(t, []string{"package.json"}, report.Written)

		content, err := store.Read(ctx, "src/main.ts")
		require.NoError(t, err)
		assert.Equal(t, "original", string(content))
	})

	t.Run("overwrite replaces content", func(t *testing.T) {
		store := NewMemoryStorage("out")
		require.NoError(t, store.Write(ctx, "src/main.ts", []byte("original")))

		report, err := store.WriteFiles(ctx, files, WriteOptions{Overwrite: true})
		require.NoError(t, err)
		assert.Len(t, report.Written, 2)
		assert.Empty(t, report.BackedUp)

		content, err := store.Read(ctx, "src/main.ts")
		require.NoError(t, err)
		assert.Equal(t, "v1", string(content))
	})

	t.Run("backup preserves the previous content", func(t *testing.T) {
		store := NewMemoryStorage("out")
		require.NoError(t, store.Write(ctx, "src/main.ts", []byte("original")))

		report, err := store.WriteFiles(ctx, files, WriteOptions{Overwrite: true, Backup: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/main.ts"}, report.BackedUp)

		backup, err := store.Read(ctx, "src/main.ts.bak")
		require.NoError(t, err)
		assert.Equal(t, "original", string(backup))

		current, err := store.Read(ctx, "src/main.ts")
		require.NoError(t, err)
		assert.Equal(t, "v1", string(current))
	})
}

func TestFilesystemStorage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStorage("out")
	assert.Error(t, store.Write(ctx, "a.txt", []byte("x")))
	_, err := store.Read(ctx, "a.txt")
	assert.Error(t, err)
}
