package handlers

import (
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"legal_editor_app_go/config"
	"legal_editor_app_go/services"
	"legal_editor_app_go/services/i18n"
	"legal_editor_app_go/services/pagination"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:  "development",
		PageSize:     "A4",
		MeasureDelay: time.Hour, // tests drive measurements explicitly
		DefaultTitle: "Legal Document",
	}
}

// setupTestServices installs fresh global services backed by a temp dir
func setupTestServices(t *testing.T) *services.DocumentService {
	t.Helper()
	require.NoError(t, i18n.Load())

	oldDocs, oldStorage := services.Documents, services.Storage
	t.Cleanup(func() {
		services.Documents = oldDocs
		services.Storage = oldStorage
	})

	services.Storage = services.NewLocalStorage(t.TempDir())
	services.Documents = services.NewDocumentService(
		pagination.NewHeuristicMeasurer(pagination.A4Layout()), time.Hour, "A4")
	return services.Documents
}

// createTestDocument opens a session directly on the service
func createTestDocument(t *testing.T, content string) *services.DocumentSession {
	t.Helper()
	session, err := services.Documents.Create("Service Agreement", content)
	require.NoError(t, err)
	return session
}

func newTestContext(method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("config", testConfig())
	setTestLocale(c, "en")
	return c, rec
}

// setTestLocale does what the Locale middleware would
func setTestLocale(c echo.Context, lang string) {
	c.Set("locale", lang)
	c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))
}

func withDocumentID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func formBody(values url.Values) io.Reader {
	return strings.NewReader(values.Encode())
}
