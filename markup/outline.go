package markup

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/fwojciec/bindery"
)

// Outline returns every heading (h1-h6) in document order. Headings with an
// id attribute keep it as their anchor; others get a URL-safe anchor derived
// from the title, with numeric suffixes for duplicates.
func Outline(doc *bindery.Document) []bindery.Section {
	headings := doc.Root.FindAll("h1", "h2", "h3", "h4", "h5", "h6")
	if len(headings) == 0 {
		return nil
	}

	sections := make([]bindery.Section, 0, len(headings))
	anchorCounts := make(map[string]int)

	for _, h := range headings {
		title := NormalizeText(h.TextContent())
		baseAnchor, ok := h.Attr("id")
		if !ok || baseAnchor == "" {
			baseAnchor = generateAnchor(title)
		}

		anchor := baseAnchor
		if count, exists := anchorCounts[baseAnchor]; exists {
			anchor = baseAnchor + "-" + strconv.Itoa(count)
			anchorCounts[baseAnchor]++
		} else {
			anchorCounts[baseAnchor] = 1
		}

		sections = append(sections, bindery.Section{
			Level:  h.HeadingLevel(),
			Title:  title,
			Anchor: anchor,
		})
	}

	return sections
}

// generateAnchor creates a URL-safe anchor from a title.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
