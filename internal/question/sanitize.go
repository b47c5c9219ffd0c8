package question

import (
	"regexp"
	"strings"
)

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>?`)
	fencePattern   = regexp.MustCompile("`{1,3}")
	headingPattern = regexp.MustCompile(`(?m)^\s*#{1,6}\s*`)
)

// CleanText strips markup wrappers the generator sometimes leaks into free
// text: HTML-ish tags, bold/italic markers, heading markers, code fences.
// Dollar-delimited math ($...$, $$...$$) passes through untouched so KaTeX
// rendering keeps working downstream.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = tagPattern.ReplaceAllString(s, "")
	s = headingPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "__", "")
	s = fencePattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
