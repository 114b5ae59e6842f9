package pagination

import (
	"fmt"
	"time"

	"legal_editor_app_go/services/i18n"
)

// ConfidentialityLabel is printed on every footer
const ConfidentialityLabel = "Confidential & Privileged"

// FooterDateLayout is the fixed medium date format of the footer
const FooterDateLayout = "Jan 2, 2006"

// PageSet is the ordered page sequence 1..Count derived from one settled
// snapshot. A PageSet is never modified; a recount builds a new one.
type PageSet struct {
	Revision    uint64
	Count       int
	Measurement Measurement
	Layout      Layout
	ComputedAt  time.Time
}

// NewPageSet estimates the page count of a measured snapshot
func NewPageSet(revision uint64, m Measurement, layout Layout) (*PageSet, error) {
	count, err := EstimateFor(m, layout)
	if err != nil {
		return nil, err
	}
	return &PageSet{
		Revision:    revision,
		Count:       count,
		Measurement: m,
		Layout:      layout,
		ComputedAt:  time.Now(),
	}, nil
}

// InitialPageSet is the single empty page shown before anything is measured
func InitialPageSet(layout Layout) *PageSet {
	return &PageSet{Count: 1, Layout: layout, ComputedAt: time.Now()}
}

// Supersedes reports whether s should replace cur: a newer revision always
// does, and at the same revision only a higher-ranked measurement source.
func (s *PageSet) Supersedes(cur *PageSet) bool {
	if s.Revision != cur.Revision {
		return s.Revision > cur.Revision
	}
	return s.Measurement.Source > cur.Measurement.Source
}

// Indices returns 1..Count
func (s *PageSet) Indices() []int {
	indices := make([]int, s.Count)
	for i := range indices {
		indices[i] = i + 1
	}
	return indices
}

// DocumentMeta is what the page chrome shows besides page numbers
type DocumentMeta struct {
	Title  string
	Date   time.Time
	Locale string
}

// Rect is a box positioned inside a page, in pixels
type Rect struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Frame positions the three bands of a page
type Frame struct {
	Page    Rect `json:"page"`
	Header  Rect `json:"header"`
	Content Rect `json:"content"`
	Footer  Rect `json:"footer"`
}

type Header struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Index int    `json:"index"`
}

type Footer struct {
	Label     string `json:"label"`
	PageLabel string `json:"page_label"`
	Index     int    `json:"index"`
	Total     int    `json:"total"`
	Date      string `json:"date"`
}

// Page is a view of one page index over the shared snapshot
type Page struct {
	Index  int    `json:"index"`
	Total  int    `json:"total"`
	Header Header `json:"header"`
	Footer Footer `json:"footer"`
	Window Window `json:"window"`
}

// FrameFor positions header, content and footer bands within a page
func FrameFor(layout Layout) Frame {
	m := layout.Margin()
	w := layout.ContentWidth()
	return Frame{
		Page:    Rect{Width: layout.PageWidth(), Height: layout.PageHeight()},
		Header:  Rect{Top: m, Left: m, Width: w, Height: layout.HeaderHeight()},
		Content: Rect{Top: m + layout.HeaderHeight(), Left: m, Width: w, Height: layout.ContentHeight()},
		Footer:  Rect{Top: layout.PageHeight() - m - layout.FooterHeight(), Left: m, Width: w, Height: layout.FooterHeight()},
	}
}

// Render produces one page view per index of set
func Render(set *PageSet, meta DocumentMeta) []Page {
	headerDate := i18n.FormatShortDate(meta.Locale, meta.Date)
	footerDate := meta.Date.Format(FooterDateLayout)

	windows := Windows(set.Count, set.Layout)
	pages := make([]Page, 0, set.Count)
	for _, i := range set.Indices() {
		pages = append(pages, Page{
			Index: i,
			Total: set.Count,
			Header: Header{
				Title: meta.Title,
				Date:  headerDate,
				Index: i,
			},
			Footer: Footer{
				Label:     ConfidentialityLabel,
				PageLabel: fmt.Sprintf("Page %d of %d", i, set.Count),
				Index:     i,
				Total:     set.Count,
				Date:      footerDate,
			},
			Window: windows[i-1],
		})
	}
	return pages
}
