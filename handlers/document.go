package handlers

import (
	"errors"
	"net/http"
	"time"

	"legal_editor_app_go/config"
	"legal_editor_app_go/middleware"
	"legal_editor_app_go/services"
	"legal_editor_app_go/services/pagination"
	"legal_editor_app_go/templates/pages"
	"legal_editor_app_go/templates/partials"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// MeasurementRequest is the browser editor's own reading of its DOM
type MeasurementRequest struct {
	Revision uint64 `json:"revision"`
	Height   int    `json:"height"`
	Breaks   int    `json:"breaks"`
}

// PageSetResponse is the JSON form of the current page set
type PageSetResponse struct {
	DocumentID    string            `json:"document_id"`
	Revision      uint64            `json:"revision"`
	Count         int               `json:"count"`
	ContentHeight int               `json:"content_height"`
	Breaks        int               `json:"breaks"`
	BandHeight    int               `json:"band_height"`
	Source        pagination.Source `json:"source"`
	Pending       bool              `json:"pending"` // newer content awaits measurement
	Pages         []pagination.Page `json:"pages"`
}

func render(c echo.Context, component templ.Component) error {
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg
	}
	return &config.Config{DefaultTitle: "Legal Document", MeasureDelay: config.DefaultMeasureDelay}
}

// loadSession resolves the :id route parameter to an open session
func loadSession(c echo.Context) (*services.DocumentSession, error) {
	session, err := services.Documents.Get(c.Param("id"))
	if errors.Is(err, services.ErrDocumentNotFound) {
		if c.Request().Header.Get("HX-Request") == "true" {
			return nil, c.HTML(http.StatusNotFound, `<div class="p-4 bg-red-50 text-red-700 rounded">Document not found</div>`)
		}
		return nil, echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	return session, err
}

// pageSetView derives the rendered pages of a session's current page set
func pageSetView(c echo.Context, session *services.DocumentSession) partials.PageSetView {
	doc := session.Document()
	set := session.Paginator.Current()
	meta := pagination.DocumentMeta{
		Title:  doc.Title,
		Date:   time.Now(),
		Locale: middleware.GetLocale(c),
	}
	return partials.PageSetView{
		DocumentID: doc.ID,
		Set:        set,
		Pages:      pagination.Render(set, meta),
		Content:    doc.Content,
	}
}

// NewDocumentHandler opens a session seeded with the sample agreement
func NewDocumentHandler(c echo.Context) error {
	cfg := getConfig(c)
	session, err := services.Documents.Create(cfg.DefaultTitle, services.SampleContent)
	if err != nil {
		c.Logger().Errorf("Failed to create document: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create document")
	}
	return c.Redirect(http.StatusFound, "/documents/"+session.Document().ID)
}

// EditorHandler renders the editor page
func EditorHandler(c echo.Context) error {
	session, err := loadSession(c)
	if session == nil {
		return err
	}

	cfg := getConfig(c)
	doc := session.Document()
	view := pageSetView(c, session)
	editorCfg := pages.EditorConfig{
		DocumentID:    doc.ID,
		Revision:      doc.Revision,
		SettleMs:      int(cfg.MeasureDelay / time.Millisecond),
		PageBreakHTML: pagination.PageBreakHTML,
		ContentWidth:  view.Set.Layout.ContentWidth(),
	}

	return render(c, pages.EditorPage(doc, editorCfg, view))
}

// UpdateContentHandler receives the editor's change notification
func UpdateContentHandler(c echo.Context) error {
	revision, err := services.Documents.UpdateContent(c.Param("id"), c.FormValue("content"))
	if errors.Is(err, services.ErrDocumentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, map[string]uint64{"revision": revision})
}

// ReportMeasurementHandler applies a measurement taken by the browser
func ReportMeasurementHandler(c echo.Context) error {
	var req MeasurementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid measurement")
	}

	m := pagination.Measurement{Height: req.Height, Breaks: req.Breaks}
	if err := m.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	applied, err := services.Documents.ReportMeasurement(c.Param("id"), req.Revision, m)
	switch {
	case errors.Is(err, services.ErrDocumentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	case errors.Is(err, services.ErrUnknownRevision):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case err != nil:
		return err
	}

	session, err := loadSession(c)
	if session == nil {
		return err
	}
	set := session.Paginator.Current()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"applied":  applied,
		"revision": set.Revision,
		"count":    set.Count,
	})
}

// UpdateTitleHandler is the settings form; it answers with the re-rendered pages
func UpdateTitleHandler(c echo.Context) error {
	if err := services.Documents.SetTitle(c.Param("id"), c.FormValue("title")); err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Document not found")
		}
		return err
	}
	return PagesViewHandler(c)
}

// GetPagesHandler returns the current page set as JSON
func GetPagesHandler(c echo.Context) error {
	session, err := loadSession(c)
	if session == nil {
		return err
	}

	view := pageSetView(c, session)
	return c.JSON(http.StatusOK, PageSetResponse{
		DocumentID:    view.DocumentID,
		Revision:      view.Set.Revision,
		Count:         view.Set.Count,
		ContentHeight: view.Set.Measurement.Height,
		Breaks:        view.Set.Measurement.Breaks,
		BandHeight:    view.Set.Layout.ContentHeight(),
		Source:        view.Set.Measurement.Source,
		Pending:       pending(session, view.Set),
		Pages:         view.Pages,
	})
}

// PagesViewHandler returns the page container as an HTMX partial
func PagesViewHandler(c echo.Context) error {
	session, err := loadSession(c)
	if session == nil {
		return err
	}
	view := pageSetView(c, session)
	view.Preview = c.QueryParam("preview") == "true"
	return render(c, partials.PageSet(view))
}

// pending reports whether content newer than set is waiting to be measured
func pending(session *services.DocumentSession, set *pagination.PageSet) bool {
	latest := session.Paginator.Latest()
	return latest != nil && latest.Revision > set.Revision
}

// PrintHandler renders the print-ready preview. Pending content is
// measured first so the printout never lags behind the last edit.
func PrintHandler(c echo.Context) error {
	session, err := loadSession(c)
	if session == nil {
		return err
	}

	if pending(session, session.Paginator.Current()) {
		if _, err := session.Paginator.Flush(c.Request().Context()); err != nil && !errors.Is(err, pagination.ErrSurfaceNotReady) {
			c.Logger().Warnf("Print measurement failed, using last page set: %v", err)
		}
	}

	view := pageSetView(c, session)
	return render(c, pages.PrintPage(session.Document(), view, c.QueryParam("autoprint") == "1"))
}
