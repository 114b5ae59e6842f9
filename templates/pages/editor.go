package pages

import (
	"strconv"
	"strings"

	"legal_editor_app_go/models"
	"legal_editor_app_go/services/pagination"
	"legal_editor_app_go/templates/components"
	"legal_editor_app_go/templates/partials"
)

// EditorConfig is handed to the browser editor script
type EditorConfig struct {
	DocumentID    string `json:"documentId"`
	Revision      uint64 `json:"revision"`
	SettleMs      int    `json:"settleMs"`
	PageBreakHTML string `json:"pageBreakHtml"`
	ContentWidth  int    `json:"contentWidth"`
}

const pageStyles = `body { font-family: ui-sans-serif, system-ui, sans-serif; margin: 0; background: #fff; }
.toolbar { display: flex; flex-wrap: wrap; gap: 8px; align-items: center; padding: 16px; border: 1px solid #e5e7eb; border-radius: 8px; margin-bottom: 16px; }
.toolbar button, .toolbar a { font-size: 13px; padding: 4px 10px; border: 1px solid #d1d5db; border-radius: 6px; background: #fff; cursor: pointer; text-decoration: none; color: inherit; }
.panel { margin-top: 16px; padding: 16px; border-top: 1px solid #e5e7eb; font-size: 13px; }
.editor-frame { border: 1px solid #e5e7eb; padding: 16px; min-height: 268px; margin: 0 auto; cursor: text; }
#editor { outline: none; padding: 0; border: 0; }
.page-set .sheet { position: relative; }
.page-set .absolute { position: absolute; }
.page-set .page-header, .page-set .page-footer { display: flex; justify-content: space-between; align-items: center; font-size: 12px; color: #6b7280; }
.page-indicator { position: absolute; left: -64px; top: 16px; font-size: 14px; color: #6b7280; }
.inset-0 { top: 0; right: 0; bottom: 0; left: 0; }
.pointer-events-none { pointer-events: none; }
.border-dashed { border-style: dashed; }
.bg-gray-100 { background: #f3f4f6; }
.space-y-8 > * + * { margin-top: 32px; }
.mx-auto { margin-left: auto; margin-right: auto; }
.bg-white { background: #fff; }
.shadow-lg { box-shadow: 0 10px 15px -3px rgba(0,0,0,.1); }
@media print {
  .no-print, .page-indicator, .page-boundaries { display: none !important; }
  .page-set { padding: 0 !important; background: none !important; }
  .space-y-8 > * + * { margin-top: 0; }
  .sheet { page-break-after: always; box-shadow: none !important; border: 0 !important; }
}`

// styleTag inlines the page styles followed by the prose stylesheet the
// flow is laid out with
func styleTag(rules ...string) string {
	return "<style>" + strings.Join(append(rules, pagination.ProseStylesheet), "\n") + "</style>"
}

// printPageRule sizes printed sheets to the layout's paper
func printPageRule(l pagination.Layout) string {
	return "@page { size: " + strconv.Itoa(l.PageWidth()) + "px " + strconv.Itoa(l.PageHeight()) + "px; margin: 0; }"
}

// configScript embeds the editor configuration as inert JSON
func configScript(cfg EditorConfig) string {
	return `<script id="editor-config" type="application/json">` + components.JSON(cfg) + `</script>`
}

func documentPath(doc models.Document, suffix string) string {
	return "/documents/" + doc.ID + suffix
}

func previewOf(view partials.PageSetView) partials.PageSetView {
	view.Preview = true
	return view
}
