package services

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log"

	"legal_editor_app_go/models"
)

// PrintStylesheet is embedded into exported documents
const PrintStylesheet = `        @page { size: A4; margin: 20mm; }
        body { font-family: 'Times New Roman', serif; font-size: 11pt; line-height: 1.4; }
        .page-break { page-break-before: always; }
        h1 { font-size: 16pt; font-weight: bold; margin-bottom: 12pt; }
        h2 { font-size: 14pt; font-weight: bold; margin-bottom: 10pt; }
        h3 { font-size: 12pt; font-weight: bold; margin-bottom: 8pt; }
        p { margin-bottom: 6pt; }
        ul, ol { margin-bottom: 6pt; padding-left: 20pt; }`

// ExportHTML wraps the document content into a standalone, print-ready page
func ExportHTML(doc models.Document) string {
	title := html.EscapeString(doc.Title)
	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>` + title + `</title>
    <style>
` + PrintStylesheet + `
    </style>
</head>
<body>
    <h1>` + title + `</h1>
    ` + doc.Content + `
</body>
</html>`
}

// ArchiveExport stores an exported copy of the document and returns where it went
func ArchiveExport(ctx context.Context, storage StorageProvider, doc models.Document) (*StorageResult, error) {
	if storage == nil || !storage.IsConfigured() {
		return nil, fmt.Errorf("export storage is not configured")
	}
	body := []byte(ExportHTML(doc))
	key := GenerateExportKey(doc.ID, doc.ExportFileName(".html"))
	result, err := storage.UploadReader(ctx, bytes.NewReader(body), key, "text/html; charset=utf-8", int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to archive export: %w", err)
	}
	result.FileOriginalName = doc.ExportFileName(".html")
	return result, nil
}

// DeleteArchivedExports removes archived export copies from storage. Keys
// that fail to delete are logged and skipped; it returns how many went.
func DeleteArchivedExports(ctx context.Context, storage StorageProvider, keys []string) int {
	if storage == nil || !storage.IsConfigured() {
		return 0
	}
	deleted := 0
	for _, key := range keys {
		if err := storage.Delete(ctx, key); err != nil {
			log.Printf("[WARNING] Failed to delete archived export %s: %v", key, err)
			continue
		}
		deleted++
	}
	return deleted
}
