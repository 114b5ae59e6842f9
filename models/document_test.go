package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument("", "<p>x</p>", "tabloid")

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, DefaultDocumentTitle, doc.Title)
	assert.Equal(t, PageSizeA4, doc.PageSize)
	assert.Equal(t, uint64(0), doc.Revision)
	assert.Equal(t, doc.CreatedAt, doc.UpdatedAt)

	other := NewDocument("NDA", "", PageSizeLegal)
	assert.NotEqual(t, doc.ID, other.ID)
	assert.Equal(t, PageSizeLegal, other.PageSize)
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{title: "Legal Document", expected: "Legal_Document.html"},
		{title: "Lease  Agreement\t2024", expected: "Lease_Agreement_2024.html"},
		{title: "", expected: "Legal_Document.html"},
		{title: "   ", expected: "Legal_Document.html"},
		{title: "Contrato de Arrendamiento", expected: "Contrato_de_Arrendamiento.html"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			doc := &Document{Title: tt.title}
			assert.Equal(t, tt.expected, doc.ExportFileName(".html"))
		})
	}
}
