package validate

import (
	"strings"

	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/markup"
)

var genericLinkText = map[string]bool{
	"click here": true,
	"here":       true,
	"link":       true,
	"read more":  true,
	"more":       true,
}

func checkAccessibility(doc *bindery.Document, r *bindery.Report) {
	for _, img := range doc.Root.FindAll("img") {
		if _, ok := img.Attr("alt"); !ok {
			r.AddError(bindery.CategoryA11y, img.Line, "Image missing alt attribute")
		}
	}

	checkHeadings(doc, r)

	for _, a := range doc.Root.FindAll("a") {
		text := markup.NormalizeText(a.TextContent())
		if genericLinkText[strings.ToLower(text)] {
			r.AddWarning(bindery.CategoryA11y, a.Line, "Generic link text: '%s'", text)
		}
	}
}

// checkHeadings verifies the heading hierarchy: start at h1, never skip a
// level going down, exactly one h1.
func checkHeadings(doc *bindery.Document, r *bindery.Report) {
	headings := doc.Root.FindAll("h1", "h2", "h3", "h4", "h5", "h6")

	h1 := 0
	for i, h := range headings {
		level := h.HeadingLevel()
		if level == 1 {
			h1++
		}
		if i == 0 {
			if level != 1 {
				r.AddWarning(bindery.CategoryA11y, h.Line, "First heading is h%d, should be h1", level)
			}
			continue
		}
		if prev := headings[i-1].HeadingLevel(); level > prev+1 {
			r.AddWarning(bindery.CategoryA11y, h.Line, "Heading level skipped: h%d to h%d", prev, level)
		}
	}

	switch {
	case h1 == 0:
		r.AddError(bindery.CategoryA11y, 0, "No h1 tag found")
	case h1 > 1:
		r.AddWarning(bindery.CategoryA11y, 0, "Multiple h1 tags found: %d", h1)
	}
}
