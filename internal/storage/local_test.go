package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flamegraph-analysis/pkg/config"
	apperrors "github.com/flamegraph-analysis/pkg/errors"
)

func TestNewLocalStorage(t *testing.T) {
	t.Run("CreatesBaseDirectory", func(t *testing.T) {
		basePath := filepath.Join(t.TempDir(), "archive")

		store, err := NewLocalStorage(basePath)
		require.NoError(t, err)
		require.NotNil(t, store)

		info, err := os.Stat(basePath)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("EmptyPathUsesDefault", func(t *testing.T) {
		origDir, err := os.Getwd()
		require.NoError(t, err)
		defer os.Chdir(origDir)
		require.NoError(t, os.Chdir(t.TempDir()))

		store, err := NewLocalStorage("")
		require.NoError(t, err)
		assert.Equal(t, "./archive", store.BasePath())
	})
}

func TestLocalStorage_UploadDownload(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	report := []byte("<html>const cpool = ['all'];</html>")

	t.Run("RoundTrip", func(t *testing.T) {
		err := store.Upload(context.Background(), "runs/2026-08/report.html", bytes.NewReader(report))
		require.NoError(t, err)

		reader, err := store.Download(context.Background(), "runs/2026-08/report.html")
		require.NoError(t, err)
		defer reader.Close()

		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, report, data)
	})

	t.Run("DownloadMissingKey", func(t *testing.T) {
		_, err := store.Download(context.Background(), "runs/missing.html")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.GetErrorCode(err))
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := store.Upload(ctx, "canceled.html", bytes.NewReader(report))
		assert.Error(t, err)
	})
}

func TestLocalStorage_UploadFile(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	t.Run("CopiesFile", func(t *testing.T) {
		srcFile := filepath.Join(tempDir, "flamegraph.html")
		content := []byte("f(0,0,0,10)")
		require.NoError(t, os.WriteFile(srcFile, content, 0644))

		err := store.UploadFile(context.Background(), "runs/flamegraph.html", srcFile)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(tempDir, "runs", "flamegraph.html"))
		require.NoError(t, err)
		assert.Equal(t, content, data)
	})

	t.Run("MissingSource", func(t *testing.T) {
		err := store.UploadFile(context.Background(), "runs/x.html", "/nonexistent/report.html")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeUploadError, apperrors.GetErrorCode(err))
	})
}

func TestLocalStorage_DeleteAndExists(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	require.NoError(t, store.Upload(context.Background(), "report.html", bytes.NewReader([]byte("x"))))

	exists, err := store.Exists(context.Background(), "report.html")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(context.Background(), "report.html"))

	exists, err = store.Exists(context.Background(), "report.html")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(context.Background(), "report.html"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalStorage(tempDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tempDir, "runs/report.html"), store.GetURL("runs/report.html"))
}

func TestNewStorage(t *testing.T) {
	t.Run("Local", func(t *testing.T) {
		store, err := NewStorage(&config.StorageConfig{Type: "local", LocalPath: t.TempDir()})
		require.NoError(t, err)
		_, ok := store.(*LocalStorage)
		assert.True(t, ok)
	})

	t.Run("EmptyTypeDefaultsToLocal", func(t *testing.T) {
		store, err := NewStorage(&config.StorageConfig{LocalPath: t.TempDir()})
		require.NoError(t, err)
		_, ok := store.(*LocalStorage)
		assert.True(t, ok)
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := NewStorage(&config.StorageConfig{Type: "s3", LocalPath: t.TempDir()})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeConfigError, apperrors.GetErrorCode(err))
	})

	t.Run("NilConfig", func(t *testing.T) {
		_, err := NewStorage(nil)
		require.Error(t, err)
	})
}
