package pagination

import (
	"fmt"
	"strings"
)

// Page size names accepted by LayoutForPageSize
const (
	PageSizeA4     = "A4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Page geometry in CSS pixels at 96 dpi
const (
	A4Width      = 794  // 210mm
	A4Height     = 1123 // 297mm
	LetterWidth  = 816  // 8.5in
	LetterHeight = 1056 // 11in
	LegalHeight  = 1344 // 14in

	DefaultMargin       = 60 // ~20mm
	DefaultHeaderHeight = 40
	DefaultFooterHeight = 40
)

// ConfigurationError reports page geometry that cannot hold any content
type ConfigurationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid page layout: %s=%d: %s", e.Field, e.Value, e.Reason)
}

// Layout is the fixed page geometry shared by the estimator and the renderer.
// Values are CSS pixels. A Layout is immutable; build it with NewLayout.
type Layout struct {
	pageWidth    int
	pageHeight   int
	margin       int
	headerHeight int
	footerHeight int
}

// NewLayout validates the geometry and derives the content band
func NewLayout(pageWidth, pageHeight, margin, headerHeight, footerHeight int) (Layout, error) {
	fields := []struct {
		name  string
		value int
	}{
		{"pageWidth", pageWidth},
		{"pageHeight", pageHeight},
		{"margin", margin},
		{"headerHeight", headerHeight},
		{"footerHeight", footerHeight},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return Layout{}, &ConfigurationError{Field: f.name, Value: f.value, Reason: "must be positive"}
		}
	}

	l := Layout{
		pageWidth:    pageWidth,
		pageHeight:   pageHeight,
		margin:       margin,
		headerHeight: headerHeight,
		footerHeight: footerHeight,
	}
	if h := l.ContentHeight(); h <= 0 {
		return Layout{}, &ConfigurationError{Field: "contentHeight", Value: h, Reason: "margins, header and footer leave no room for content"}
	}
	if w := l.ContentWidth(); w <= 0 {
		return Layout{}, &ConfigurationError{Field: "contentWidth", Value: w, Reason: "margins leave no room for content"}
	}
	return l, nil
}

// MustLayout is NewLayout for compile-time presets
func MustLayout(pageWidth, pageHeight, margin, headerHeight, footerHeight int) Layout {
	l, err := NewLayout(pageWidth, pageHeight, margin, headerHeight, footerHeight)
	if err != nil {
		panic(err)
	}
	return l
}

// A4Layout is the editor's default page: 923px content band
func A4Layout() Layout {
	return MustLayout(A4Width, A4Height, DefaultMargin, DefaultHeaderHeight, DefaultFooterHeight)
}

// LayoutForPageSize returns the default layout for a named paper size
func LayoutForPageSize(size string) (Layout, error) {
	switch strings.ToLower(size) {
	case "a4", "":
		return A4Layout(), nil
	case PageSizeLetter:
		return NewLayout(LetterWidth, LetterHeight, DefaultMargin, DefaultHeaderHeight, DefaultFooterHeight)
	case PageSizeLegal:
		return NewLayout(LetterWidth, LegalHeight, DefaultMargin, DefaultHeaderHeight, DefaultFooterHeight)
	default:
		return Layout{}, fmt.Errorf("unknown page size %q", size)
	}
}

func (l Layout) PageWidth() int { return l.pageWidth }
func (l Layout) PageHeight() int { return l.pageHeight }
func (l Layout) Margin() int { return l.margin }
func (l Layout) HeaderHeight() int { return l.headerHeight }
func (l Layout) FooterHeight() int { return l.footerHeight }

// ContentHeight is the content band: pageHeight - 2*margin - header - footer
func (l Layout) ContentHeight() int {
	return l.pageHeight - 2*l.margin - l.headerHeight - l.footerHeight
}

// ContentWidth is the horizontal room between the side margins
func (l Layout) ContentWidth() int {
	return l.pageWidth - 2*l.margin
}

// IsZero reports whether l was never built by NewLayout
func (l Layout) IsZero() bool {
	return l == Layout{}
}
