package editor

import (
	"strconv"

	"legal_editor_app_go/services/pagination"
)

// SheetStyle sizes a page sheet to the layout's paper
func SheetStyle(l pagination.Layout) string {
	w := strconv.Itoa(l.PageWidth()) + "px"
	h := strconv.Itoa(l.PageHeight()) + "px"
	return "width: " + w + "; height: " + h + "; min-height: " + h + ";"
}

// SurfaceStyle makes the editing surface wrap text exactly like the content band
func SurfaceStyle(l pagination.Layout) string {
	return "width: " + strconv.Itoa(l.ContentWidth()) + "px; max-width: 100%;"
}
