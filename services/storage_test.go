package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"legal_editor_app_go/config"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorage(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "storage_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	storage := NewLocalStorage(tempDir)
	ctx := context.Background()
	content := "<p>hello storage</p>"
	key := "documents/d1/exports/file.html"
	contentType := "text/html; charset=utf-8"
	size := int64(len(content))

	t.Run("UploadReader creates file", func(t *testing.T) {
		reader := strings.NewReader(content)
		result, err := storage.UploadReader(ctx, reader, key, contentType, size)
		assert.NoError(t, err)
		assert.Equal(t, key, result.Key)
		assert.Equal(t, size, result.FileSize)
		assert.Equal(t, "file.html", result.FileName)
		assert.Equal(t, "/exports/"+key, result.URL)

		// Verify file exists
		_, err = os.Stat(filepath.Join(tempDir, key))
		assert.NoError(t, err)
	})

	t.Run("Get retrieves file content", func(t *testing.T) {
		reader, retrievedType, err := storage.Get(ctx, key)
		assert.NoError(t, err)
		defer reader.Close()

		got, _ := io.ReadAll(reader)
		assert.Equal(t, content, string(got))
		assert.Equal(t, "text/html; charset=utf-8", retrievedType)
	})

	t.Run("Get detects MIME types correctly", func(t *testing.T) {
		pdfKey := "test/doc.pdf"
		storage.UploadReader(ctx, strings.NewReader("%PDF-1.4"), pdfKey, "application/pdf", 8)

		_, retrievedType, err := storage.Get(ctx, pdfKey)
		assert.NoError(t, err)
		assert.Equal(t, "application/pdf", retrievedType)

		txtKey := "test/notes.txt"
		storage.UploadReader(ctx, strings.NewReader("notes"), txtKey, "text/plain", 5)
		_, retrievedType, err = storage.Get(ctx, txtKey)
		assert.NoError(t, err)
		assert.Equal(t, "application/octet-stream", retrievedType) // LocalStorage defaults to octet-stream for .txt
	})

	t.Run("Keys cannot escape the base directory", func(t *testing.T) {
		_, err := storage.UploadReader(ctx, strings.NewReader("x"), "../../escape.html", contentType, 1)
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(tempDir, "escape.html"))
		assert.NoError(t, err, "traversal is folded into the base directory")

		_, _, err = storage.Get(ctx, "/")
		assert.Error(t, err)
	})

	t.Run("Get missing file", func(t *testing.T) {
		_, _, err := storage.Get(ctx, "nope.html")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Delete removes file", func(t *testing.T) {
		err := storage.Delete(ctx, key)
		assert.NoError(t, err)

		_, err = os.Stat(filepath.Join(tempDir, key))
		assert.True(t, os.IsNotExist(err))

		assert.NoError(t, storage.Delete(ctx, key), "deleting twice is fine")
	})

	t.Run("URLs and paths", func(t *testing.T) {
		url := storage.GetPublicURL("some/key.html")
		assert.Equal(t, "/exports/some/key.html", url)

		signed, err := storage.GetSignedURL(ctx, "some/key.html", time.Hour)
		assert.NoError(t, err)
		assert.Equal(t, url, signed)
	})
}

func TestKeyGeneration(t *testing.T) {
	filename := "Lease_Agreement.html"

	t.Run("GenerateStorageKey", func(t *testing.T) {
		key := GenerateStorageKey("prefix", filename)
		assert.True(t, strings.HasPrefix(key, "prefix/"))
		assert.True(t, strings.HasSuffix(key, ".html"))
		// Check for UUID-like part
		parts := strings.Split(filepath.Base(key), "_")
		assert.Len(t, parts, 2)
	})

	t.Run("GenerateExportKey", func(t *testing.T) {
		key := GenerateExportKey("d1", filename)
		assert.True(t, strings.HasPrefix(key, "documents/d1/exports/"))
		assert.True(t, strings.HasSuffix(key, ".html"))
		assert.NotEqual(t, key, GenerateExportKey("d1", filename))
	})
}

func TestIsConfigured(t *testing.T) {
	ls := NewLocalStorage("/tmp")
	assert.True(t, ls.IsConfigured())

	r2 := &R2Storage{bucket: "test-bucket", client: nil}
	assert.False(t, r2.IsConfigured())
}

func TestR2PublicURL(t *testing.T) {
	r2 := &R2Storage{bucket: "b", publicURL: "https://cdn.example.com/"}
	assert.Equal(t, "https://cdn.example.com/documents/x.html", r2.GetPublicURL("documents/x.html"))

	private := &R2Storage{bucket: "b"}
	assert.Empty(t, private.GetPublicURL("documents/x.html"))
}

func TestInitializeStorageFallsBackToLocal(t *testing.T) {
	old := Storage
	defer func() { Storage = old }()

	InitializeStorage(&config.Config{ExportDir: t.TempDir()})
	_, ok := Storage.(*LocalStorage)
	assert.True(t, ok)
}

func TestNewR2Storage(t *testing.T) {
	r2, err := NewR2Storage(&config.Config{
		R2AccountID:       "acct",
		R2AccessKeyID:     "key",
		R2SecretAccessKey: "secret",
		R2BucketName:      "exports",
	})
	assert.NoError(t, err)
	assert.True(t, r2.IsConfigured())

	url, err := r2.GetSignedURL(context.Background(), "documents/x.html", time.Minute)
	assert.NoError(t, err)
	assert.Contains(t, url, "acct.r2.cloudflarestorage.com")
	assert.Contains(t, url, "X-Amz-Signature")
}
