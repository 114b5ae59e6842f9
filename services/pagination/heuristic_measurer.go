package pagination

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// BlockStyle holds the vertical metrics of one block tag, in pixels
type BlockStyle struct {
	FontSize     float64
	LineHeight   float64
	MarginTop    float64
	MarginBottom float64
	Indent       float64 // left padding applied to children
}

// DefaultBlockStyles approximates the editor's compact prose stylesheet
var DefaultBlockStyles = map[string]BlockStyle{
	"p":          {FontSize: 14, LineHeight: 24, MarginTop: 16, MarginBottom: 16},
	"h1":         {FontSize: 30, LineHeight: 36, MarginTop: 0, MarginBottom: 24},
	"h2":         {FontSize: 20, LineHeight: 28, MarginTop: 32, MarginBottom: 16},
	"h3":         {FontSize: 18, LineHeight: 28, MarginTop: 28, MarginBottom: 8},
	"h4":         {FontSize: 14, LineHeight: 20, MarginTop: 20, MarginBottom: 8},
	"li":         {FontSize: 14, LineHeight: 24, MarginTop: 4, MarginBottom: 4},
	"ul":         {FontSize: 14, LineHeight: 24, MarginTop: 16, MarginBottom: 16, Indent: 22},
	"ol":         {FontSize: 14, LineHeight: 24, MarginTop: 16, MarginBottom: 16, Indent: 22},
	"blockquote": {FontSize: 14, LineHeight: 24, MarginTop: 22, MarginBottom: 22, Indent: 16},
	"pre":        {FontSize: 12, LineHeight: 20, MarginTop: 20, MarginBottom: 20, Indent: 14},
	"div":        {FontSize: 14, LineHeight: 24},
	"table":      {FontSize: 14, LineHeight: 24, MarginTop: 24, MarginBottom: 24},
	"tr":         {FontSize: 14, LineHeight: 24, MarginTop: 4, MarginBottom: 4},
}

// Page-break marker: 1px box, 2px border, 2rem margins
const (
	pageBreakBoxHeight = 3
	pageBreakMargin    = 32
	ruleHeight         = 1
	ruleMargin         = 24
)

// HeuristicMeasurer estimates rendered height without a browser. Text is
// wrapped word by word using an average glyph width per font size.
type HeuristicMeasurer struct {
	Width      float64
	GlyphRatio float64 // average glyph width as a fraction of font size
	Styles     map[string]BlockStyle
}

// NewHeuristicMeasurer measures content as it would flow in layout's content band
func NewHeuristicMeasurer(layout Layout) *HeuristicMeasurer {
	return &HeuristicMeasurer{
		Width:      float64(layout.ContentWidth()),
		GlyphRatio: 0.5,
		Styles:     DefaultBlockStyles,
	}
}

type box struct {
	height       float64
	marginTop    float64
	marginBottom float64
}

func (m *HeuristicMeasurer) Measure(ctx context.Context, content string) (Measurement, error) {
	if err := ctx.Err(); err != nil {
		return Measurement{}, err
	}
	nodes, err := parseFragment(content)
	if err != nil {
		return Measurement{}, err
	}

	var boxes []box
	breaks := 0
	for _, n := range nodes {
		walk(n, func(n *html.Node) {
			if isPageBreak(n) {
				breaks++
			}
		})
		boxes = append(boxes, m.boxes(n, m.Width)...)
	}

	return Measurement{Height: int(math.Ceil(stack(boxes))), Breaks: breaks, Source: SourceEstimated}, nil
}

// stack sums boxes top to bottom, collapsing adjacent margins. The leading
// and trailing margins collapse through the container and are not counted.
func stack(boxes []box) float64 {
	total := 0.0
	for i, b := range boxes {
		if i > 0 {
			total += math.Max(boxes[i-1].marginBottom, b.marginTop)
		}
		total += b.height
	}
	return total
}

func (m *HeuristicMeasurer) boxes(n *html.Node, width float64) []box {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return []box{m.leaf(n, m.style("p"), width)}
	case html.ElementNode:
	default:
		return nil
	}

	if isPageBreak(n) {
		return []box{{height: pageBreakBoxHeight, marginTop: pageBreakMargin, marginBottom: pageBreakMargin}}
	}
	if n.Data == "hr" {
		return []box{{height: ruleHeight, marginTop: ruleMargin, marginBottom: ruleMargin}}
	}

	st, isBlock := m.Styles[n.Data]
	if !isBlock {
		// Inline content outside a block renders as an anonymous paragraph
		if strings.TrimSpace(textOf(n)) == "" && n.Data != "br" {
			return nil
		}
		return []box{m.leaf(n, m.style("p"), width)}
	}

	if !hasBlockChild(n, m.Styles) {
		return []box{m.leaf(n, st, width)}
	}

	var children []box
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, m.boxes(c, width-st.Indent)...)
	}
	if len(children) == 0 {
		return nil
	}
	children[0].marginTop = math.Max(children[0].marginTop, st.MarginTop)
	last := len(children) - 1
	children[last].marginBottom = math.Max(children[last].marginBottom, st.MarginBottom)
	return children
}

func (m *HeuristicMeasurer) style(tag string) BlockStyle {
	if st, ok := m.Styles[tag]; ok {
		return st
	}
	return DefaultBlockStyles["p"]
}

// leaf lays out the inline content of a block with no block children
func (m *HeuristicMeasurer) leaf(n *html.Node, st BlockStyle, width float64) box {
	lines := 0
	for _, seg := range lineSegments(n) {
		lines += m.wrap(seg, st.FontSize, width)
	}
	if lines == 0 {
		// An empty paragraph still renders one line
		lines = 1
	}
	return box{
		height:       float64(lines) * st.LineHeight,
		marginTop:    st.MarginTop,
		marginBottom: st.MarginBottom,
	}
}

// wrap counts the lines text occupies when greedily wrapped at width
func (m *HeuristicMeasurer) wrap(text string, fontSize, width float64) int {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 1
	}
	glyph := fontSize * m.GlyphRatio
	space := glyph * 0.5
	if width < glyph {
		width = glyph
	}

	lines := 1
	lineWidth := 0.0
	for _, w := range words {
		ww := float64(utf8.RuneCountInString(w)) * glyph
		switch {
		case lineWidth == 0:
			lineWidth = ww
		case lineWidth+space+ww > width:
			lines++
			lineWidth = ww
		default:
			lineWidth += space + ww
		}
		// Words wider than the band break across lines
		for lineWidth > width {
			lines++
			lineWidth -= width
		}
	}
	return lines
}

func hasBlockChild(n *html.Node, styles map[string]BlockStyle) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if _, ok := styles[c.Data]; ok || isPageBreak(c) || c.Data == "hr" {
			return true
		}
	}
	return false
}

// lineSegments splits the text of n at <br> elements
func lineSegments(n *html.Node) []string {
	var segments []string
	var cur strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			cur.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			segments = append(segments, cur.String())
			cur.Reset()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	if cur.Len() > 0 {
		segments = append(segments, cur.String())
	}
	return segments
}

func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n, func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return b.String()
}
