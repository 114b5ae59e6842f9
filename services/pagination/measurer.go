package pagination

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageBreakType is the data-type attribute value of a manual page-break marker
const PageBreakType = "page-break"

// PageBreakHTML is the marker the editor inserts for a manual page break
const PageBreakHTML = `<div data-type="page-break" class="page-break" style="page-break-before: always; break-before: page; height: 1px; margin: 2rem 0; border-top: 2px dashed #ccc; position: relative;"><span style="position: absolute; top: -10px; left: 50%; transform: translateX(-50%); background: white; padding: 0 8px; font-size: 12px; color: #666;">Page Break</span></div>`

// ErrSurfaceNotReady is returned when there is nothing rendered to measure
// yet. Callers treat it as a no-op and wait for the next change.
var ErrSurfaceNotReady = errors.New("content surface not ready")

// Source ranks how a Measurement was taken. Within one revision a reading
// from a higher-ranked source replaces a lower-ranked one.
type Source int

const (
	SourceEstimated Source = iota // approximated from markup
	SourceRendered                // read from a laid-out surface
)

func (s Source) String() string {
	switch s {
	case SourceEstimated:
		return "estimated"
	case SourceRendered:
		return "rendered"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Source) UnmarshalText(text []byte) error {
	switch string(text) {
	case "estimated":
		*s = SourceEstimated
	case "rendered":
		*s = SourceRendered
	default:
		return fmt.Errorf("unknown measurement source %q", text)
	}
	return nil
}

// Measurement is the settled geometry of the flowing content
type Measurement struct {
	Height int    `json:"height"` // rendered pixel height
	Breaks int    `json:"breaks"` // manual page-break markers
	Source Source `json:"source"`
}

// Validate rejects negative readings
func (m Measurement) Validate() error {
	if m.Height < 0 {
		return fmt.Errorf("height must be non-negative, got %d", m.Height)
	}
	if m.Breaks < 0 {
		return fmt.Errorf("breaks must be non-negative, got %d", m.Breaks)
	}
	if m.Source < SourceEstimated || m.Source > SourceRendered {
		return fmt.Errorf("unknown measurement source %d", int(m.Source))
	}
	return nil
}

// Snapshot is one captured state of the flowing content. Snapshots are
// immutable and superseded by the next one with a higher Revision.
type Snapshot struct {
	Revision uint64
	Content  string
}

// Measurer reads the rendered height of content and counts its manual
// breaks. It must only be called once layout has settled.
type Measurer interface {
	Measure(ctx context.Context, content string) (Measurement, error)
}

// MeasurerFunc adapts a function to Measurer
type MeasurerFunc func(ctx context.Context, content string) (Measurement, error)

func (f MeasurerFunc) Measure(ctx context.Context, content string) (Measurement, error) {
	return f(ctx, content)
}

// CountPageBreaks counts div[data-type="page-break"] markers in an HTML fragment
func CountPageBreaks(content string) (int, error) {
	nodes, err := parseFragment(content)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range nodes {
		walk(n, func(n *html.Node) {
			if isPageBreak(n) {
				count++
			}
		})
	}
	return count, nil
}

func parseFragment(content string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	return nodes, nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func isPageBreak(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "div" {
		return false
	}
	return attr(n, "data-type") == PageBreakType
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
