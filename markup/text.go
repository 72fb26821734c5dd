package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Unescape decodes character references in source text.
func Unescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

// CollapseSpace replaces every run of ASCII whitespace with a single space.
// Leading and trailing whitespace collapse but are kept.
func CollapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSpace(c) {
			if !space {
				sb.WriteByte(' ')
				space = true
			}
			continue
		}
		space = false
		sb.WriteByte(c)
	}
	return sb.String()
}

// NormalizeText decodes references, collapses whitespace and trims.
func NormalizeText(s string) string {
	return strings.TrimSpace(CollapseSpace(Unescape(s)))
}
