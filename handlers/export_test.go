package handlers

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"legal_editor_app_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHandler(t *testing.T) {
	setupTestServices(t)
	session := createTestDocument(t, "<p>Terms</p>")
	id := session.Document().ID

	t.Run("Downloads standalone HTML", func(t *testing.T) {
		c, rec := newTestContext(http.MethodGet, "/documents/"+id+"/export", nil, "")
		require.NoError(t, ExportHandler(withDocumentID(c, id)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename=Service_Agreement.html`, rec.Header().Get("Content-Disposition"))
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "<h1>Service Agreement</h1>")
		assert.Contains(t, rec.Body.String(), "<p>Terms</p>")
	})

	t.Run("Non-ASCII title", func(t *testing.T) {
		require.NoError(t, services.Documents.SetTitle(id, "Contrato de Año"))
		defer services.Documents.SetTitle(id, "Service Agreement")

		c, rec := newTestContext(http.MethodGet, "/documents/"+id+"/export", nil, "")
		require.NoError(t, ExportHandler(withDocumentID(c, id)))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "filename*=utf-8''Contrato_de_A%C3%B1o.html")
	})

	t.Run("Archives and serves the copy", func(t *testing.T) {
		c, rec := newTestContext(http.MethodGet, "/documents/"+id+"/export?archive=true", nil, "")
		require.NoError(t, ExportHandler(withDocumentID(c, id)))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		location := rec.Header().Get("Location")
		require.True(t, strings.HasPrefix(location, services.ExportRoutePrefix+"documents/"+id+"/exports/"))

		key := strings.TrimPrefix(location, services.ExportRoutePrefix)
		c, rec = newTestContext(http.MethodGet, location, nil, "")
		c.SetParamNames("*")
		c.SetParamValues(key)
		require.NoError(t, ServeExportHandler(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		body, _ := io.ReadAll(rec.Body)
		assert.Contains(t, string(body), "<p>Terms</p>")

		session, err := services.Documents.Get(id)
		require.NoError(t, err)
		assert.Contains(t, session.Exports(), key, "the session owns the archived copy")
	})

	t.Run("Archive over HTMX redirects client side", func(t *testing.T) {
		c, rec := newTestContext(http.MethodGet, "/documents/"+id+"/export?archive=true", nil, "")
		c.Request().Header.Set("HX-Request", "true")
		require.NoError(t, ExportHandler(withDocumentID(c, id)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Header().Get("HX-Redirect"), services.ExportRoutePrefix))
	})
}

func TestServeExportHandlerMissing(t *testing.T) {
	setupTestServices(t)

	for _, key := range []string{"", "documents/none/exports/x.html"} {
		c, _ := newTestContext(http.MethodGet, "/exports/"+key, nil, "")
		c.SetParamNames("*")
		c.SetParamValues(key)

		err := ServeExportHandler(c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Export not found")
	}
}
