package jobs

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"legal_editor_app_go/services"
	"legal_editor_app_go/services/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocs() *services.DocumentService {
	m := pagination.MeasurerFunc(func(ctx context.Context, content string) (pagination.Measurement, error) {
		return pagination.Measurement{Height: len(content)}, nil
	})
	return services.NewDocumentService(m, time.Hour, "A4")
}

func TestCleanupIdleSessions(t *testing.T) {
	ctx := context.Background()
	docs := newDocs()
	storage := services.NewLocalStorage(t.TempDir())

	session, err := docs.Create("NDA", "<p>Terms</p>")
	require.NoError(t, err)
	result, err := services.ArchiveExport(ctx, storage, session.Document())
	require.NoError(t, err)
	session.RecordExport(result.Key)

	assert.Equal(t, 0, CleanupIdleSessions(ctx, docs, storage, time.Hour), "fresh sessions stay open")
	assert.Equal(t, 1, docs.Count())
	reader, _, err := storage.Get(ctx, result.Key)
	require.NoError(t, err)
	reader.Close()

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, CleanupIdleSessions(ctx, docs, storage, time.Millisecond))
	assert.Equal(t, 0, docs.Count())

	_, _, err = storage.Get(ctx, result.Key)
	assert.ErrorIs(t, err, os.ErrNotExist, "archived exports go with the session")
}

func TestCleanupIdleSessionsKeepsOtherExports(t *testing.T) {
	ctx := context.Background()
	docs := newDocs()
	storage := services.NewLocalStorage(t.TempDir())

	idle, err := docs.Create("Idle", "")
	require.NoError(t, err)
	idle.RecordExport(services.GenerateExportKey(idle.Document().ID, "idle.html"))

	other := services.GenerateExportKey("other", "kept.html")
	body := []byte("<p>kept</p>")
	_, err = storage.UploadReader(ctx, bytes.NewReader(body), other, "text/html", int64(len(body)))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, CleanupIdleSessions(ctx, docs, storage, time.Millisecond))

	reader, _, err := storage.Get(ctx, other)
	require.NoError(t, err)
	reader.Close()
}

func TestStartSessionCleanup(t *testing.T) {
	docs := newDocs()
	_, err := docs.Create("NDA", "")
	require.NoError(t, err)

	stop := StartSessionCleanup(docs, services.NewLocalStorage(t.TempDir()), 5*time.Millisecond, time.Millisecond)
	defer stop()

	assert.Eventually(t, func() bool {
		return docs.Count() == 0
	}, time.Second, 5*time.Millisecond)
}
