package partials

import (
	"strconv"

	"legal_editor_app_go/services/pagination"
)

// px formats a pixel length for inline styles
func px(n int) string {
	return strconv.Itoa(n) + "px"
}

func rectStyle(r pagination.Rect) string {
	return "top: " + px(r.Top) + "; left: " + px(r.Left) + "; width: " + px(r.Width) + "; height: " + px(r.Height) + ";"
}

// marginGuide outlines the printable area inside the page margins
func marginGuide(l pagination.Layout) string {
	m := px(l.Margin())
	return "top: " + m + "; left: " + m + "; right: " + m + "; bottom: " + m + ";"
}

// contentGuide outlines the content band between header and footer
func contentGuide(l pagination.Layout) string {
	m := l.Margin()
	return "top: " + px(m+l.HeaderHeight()) + "; left: " + px(m) + "; right: " + px(m) + "; bottom: " + px(m+l.FooterHeight()) + ";"
}
