package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDocumentTitle is shown in headers until the settings form changes it
const DefaultDocumentTitle = "Legal Document"

// Page size constants
const (
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
	PageSizeA4     = "A4"
)

// Document is one open editor session. Documents live in memory only.
type Document struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title    string `json:"title"`
	Content  string `json:"content"`  // sanitized editor HTML
	Revision uint64 `json:"revision"` // bumped on every content change
	PageSize string `json:"page_size"`
}

// NewDocument creates a document with a fresh id
func NewDocument(title, content, pageSize string) *Document {
	if strings.TrimSpace(title) == "" {
		title = DefaultDocumentTitle
	}
	if !IsValidPageSize(pageSize) {
		pageSize = PageSizeA4
	}
	now := time.Now()
	return &Document{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     title,
		Content:   content,
		PageSize:  pageSize,
	}
}

// IsValidPageSize checks if the page size is valid
func IsValidPageSize(size string) bool {
	return size == PageSizeLetter || size == PageSizeLegal || size == PageSizeA4
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFileName is the title with whitespace runs replaced by underscores
func (d *Document) ExportFileName(ext string) string {
	title := d.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultDocumentTitle
	}
	return whitespaceRun.ReplaceAllString(title, "_") + ext
}
