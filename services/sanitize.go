package services

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	contentPolicy     *bluemonday.Policy
	contentPolicyOnce sync.Once
)

// ContentPolicy is the UGC policy extended with what the editor emits:
// page-break markers and paragraph/heading alignment
func ContentPolicy() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("data-type").Matching(regexp.MustCompile(`^page-break$`)).OnElements("div")
		p.AllowAttrs("class").Matching(regexp.MustCompile(`^page-break$`)).OnElements("div")
		p.AllowElements("u", "s")
		p.AllowStyles("text-align").MatchingEnum("left", "center", "right", "justify").OnElements("p", "h1", "h2", "h3", "h4")
		p.AllowStyles(
			"page-break-before", "break-before", "height", "margin", "border-top",
			"position", "top", "left", "transform", "background", "padding",
			"font-size", "color",
		).OnElements("div", "span")
		contentPolicy = p
	})
	return contentPolicy
}

// SanitizeContent strips anything the editor could not have produced (XSS protection)
func SanitizeContent(content string) string {
	return ContentPolicy().Sanitize(content)
}
