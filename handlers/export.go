package handlers

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"strings"
	"time"

	"legal_editor_app_go/services"

	"github.com/labstack/echo/v4"
)

// attachmentDisposition quotes a download name, falling back to RFC 2231
// encoding for titles outside ASCII
func attachmentDisposition(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}

// ExportHandler downloads the document as standalone HTML. With
// ?archive=true a copy is stored first and the client is sent to it.
func ExportHandler(c echo.Context) error {
	session, err := loadSession(c)
	if session == nil {
		return err
	}
	doc := session.Document()

	if c.QueryParam("archive") == "true" {
		result, err := services.ArchiveExport(c.Request().Context(), services.Storage, doc)
		if err != nil {
			c.Logger().Errorf("Failed to archive export for %s: %v", doc.ID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to archive export")
		}
		session.RecordExport(result.Key)

		url := result.URL
		if url == "" {
			url, err = services.Storage.GetSignedURL(c.Request().Context(), result.Key, 15*time.Minute)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get download URL")
			}
		}
		if c.Request().Header.Get("HX-Request") == "true" {
			c.Response().Header().Set("HX-Redirect", url)
			return c.NoContent(http.StatusOK)
		}
		return c.Redirect(http.StatusSeeOther, url)
	}

	c.Response().Header().Set("Content-Disposition", attachmentDisposition(doc.ExportFileName(".html")))
	return c.HTMLBlob(http.StatusOK, []byte(services.ExportHTML(doc)))
}

// ServeExportHandler streams an archived export from local storage
func ServeExportHandler(c echo.Context) error {
	key := strings.TrimPrefix(c.Param("*"), "/")
	if key == "" {
		return echo.NewHTTPError(http.StatusNotFound, "Export not found")
	}

	reader, contentType, err := services.Storage.Get(c.Request().Context(), key)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.Logger().Warnf("Failed to read export %s: %v", key, err)
		}
		return echo.NewHTTPError(http.StatusNotFound, "Export not found")
	}
	defer reader.Close()

	return c.Stream(http.StatusOK, contentType, reader)
}
