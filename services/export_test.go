package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"legal_editor_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStorageProvider is a mock implementation of StorageProvider
type MockStorageProvider struct {
	mock.Mock
}

func (m *MockStorageProvider) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	body, _ := io.ReadAll(reader)
	args := m.Called(ctx, string(body), key, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StorageResult), args.Error(1)
}

func (m *MockStorageProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorageProvider) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

func (m *MockStorageProvider) GetSignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}

func (m *MockStorageProvider) GetPublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockStorageProvider) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func TestExportHTML(t *testing.T) {
	doc := models.Document{Title: `Smith <v> Jones`, Content: "<p>Body</p>"}
	out := ExportHTML(doc)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Smith &lt;v&gt; Jones</title>")
	assert.Contains(t, out, "<h1>Smith &lt;v&gt; Jones</h1>")
	assert.Contains(t, out, "<p>Body</p>")
	assert.Contains(t, out, "@page { size: A4; margin: 20mm; }")
	assert.Contains(t, out, ".page-break { page-break-before: always; }")
	assert.Less(t, strings.Index(out, "<h1>"), strings.Index(out, "<p>Body</p>"), "title precedes the content")
}

func TestArchiveExport(t *testing.T) {
	ctx := context.Background()
	doc := models.Document{ID: "doc-1", Title: "Lease Agreement", Content: "<p>Terms</p>"}
	body := ExportHTML(doc)

	t.Run("Uploads the export", func(t *testing.T) {
		storage := new(MockStorageProvider)
		storage.On("IsConfigured").Return(true)
		storage.On("UploadReader", ctx, body, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "documents/doc-1/exports/") && strings.HasSuffix(key, ".html")
		}), "text/html; charset=utf-8", int64(len(body))).
			Return(&StorageResult{Key: "documents/doc-1/exports/x.html", URL: "/exports/documents/doc-1/exports/x.html"}, nil)

		result, err := ArchiveExport(ctx, storage, doc)
		require.NoError(t, err)
		assert.Equal(t, "Lease_Agreement.html", result.FileOriginalName)
		assert.Equal(t, "/exports/documents/doc-1/exports/x.html", result.URL)
		storage.AssertExpectations(t)
	})

	t.Run("Upload failure", func(t *testing.T) {
		storage := new(MockStorageProvider)
		storage.On("IsConfigured").Return(true)
		storage.On("UploadReader", ctx, body, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("bucket gone"))

		_, err := ArchiveExport(ctx, storage, doc)
		assert.ErrorContains(t, err, "bucket gone")
	})

	t.Run("Unconfigured storage", func(t *testing.T) {
		storage := new(MockStorageProvider)
		storage.On("IsConfigured").Return(false)

		_, err := ArchiveExport(ctx, storage, doc)
		assert.Error(t, err)
		storage.AssertNotCalled(t, "UploadReader", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

		_, err = ArchiveExport(ctx, nil, doc)
		assert.Error(t, err)
	})
}

func TestDeleteArchivedExports(t *testing.T) {
	ctx := context.Background()

	t.Run("Skips keys that fail", func(t *testing.T) {
		storage := new(MockStorageProvider)
		storage.On("IsConfigured").Return(true)
		storage.On("Delete", ctx, "documents/doc-1/exports/a.html").Return(nil)
		storage.On("Delete", ctx, "documents/doc-1/exports/b.html").Return(errors.New("access denied"))
		storage.On("Delete", ctx, "documents/doc-1/exports/c.html").Return(nil)

		deleted := DeleteArchivedExports(ctx, storage, []string{
			"documents/doc-1/exports/a.html",
			"documents/doc-1/exports/b.html",
			"documents/doc-1/exports/c.html",
		})
		assert.Equal(t, 2, deleted)
		storage.AssertExpectations(t)
	})

	t.Run("Unconfigured storage", func(t *testing.T) {
		storage := new(MockStorageProvider)
		storage.On("IsConfigured").Return(false)

		assert.Equal(t, 0, DeleteArchivedExports(ctx, storage, []string{"documents/doc-1/exports/a.html"}))
		storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		assert.Equal(t, 0, DeleteArchivedExports(ctx, nil, []string{"x"}))
	})
}
