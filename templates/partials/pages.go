package partials

import (
	"legal_editor_app_go/services/pagination"
)

// PageSetView is everything the page container renders
type PageSetView struct {
	DocumentID string
	Set        *pagination.PageSet
	Pages      []pagination.Page
	Content    string // sanitized flow, shared by every page
	Preview    bool
}

func containerClass(view PageSetView) string {
	if view.Preview {
		return "page-set p-8"
	}
	return "page-set p-8 bg-gray-100"
}

func sheetClass(view PageSetView) string {
	if view.Preview {
		return "sheet bg-white mx-auto relative print-page"
	}
	return "sheet bg-white mx-auto relative shadow-lg border border-gray-200"
}
