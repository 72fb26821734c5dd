package etree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/bindery"
)

const linkColor = "0000FF"

// document creates the document root and returns the body element.
func (b *docxBuilder) document() *etree.Element {
	root := b.doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsWordMain)
	root.CreateAttr("xmlns:r", nsOfficeRels)
	root.CreateAttr("xmlns:wp", nsDrawingWP)
	root.CreateAttr("xmlns:a", nsDrawingMain)
	root.CreateAttr("xmlns:pic", nsDrawingPic)
	return root.CreateElement("w:body")
}

func (b *docxBuilder) sectionProperties(body *etree.Element) {
	sect := body.CreateElement("w:sectPr")
	size := sect.CreateElement("w:pgSz")
	setVals(size, "w:w", "12240", "w:h", "15840")
	margins := sect.CreateElement("w:pgMar")
	setVals(margins,
		"w:top", "1440", "w:right", "1440", "w:bottom", "1440", "w:left", "1440",
		"w:header", "720", "w:footer", "720", "w:gutter", "0")
}

func (b *docxBuilder) block(body *etree.Element, block bindery.Block) {
	numbered := false
	switch v := block.(type) {
	case *bindery.Paragraph:
		numbered = v.Kind == bindery.NumberParagraph
		b.paragraph(body, v, numbered)
	case *bindery.Table:
		b.table(body, v)
	case *bindery.Image:
		b.image(body, v)
	}
	b.inNumbered = numbered
}

func (b *docxBuilder) paragraph(parent *etree.Element, p *bindery.Paragraph, numbered bool) {
	el := parent.CreateElement("w:p")
	ppr := el.CreateElement("w:pPr")

	switch p.Kind {
	case bindery.TitleParagraph:
		setVal(ppr.CreateElement("w:pStyle"), "Title")
	case bindery.HeadingParagraph:
		setVal(ppr.CreateElement("w:pStyle"), "Heading"+strconv.Itoa(clamp(p.Level, 1, 5)))
	case bindery.BulletParagraph:
		setVal(ppr.CreateElement("w:pStyle"), "ListBullet")
	case bindery.NumberParagraph:
		setVal(ppr.CreateElement("w:pStyle"), "ListNumber")
		if !b.inNumbered {
			b.numbered = append(b.numbered, firstOrderedNum+len(b.numbered))
		}
		numPr := ppr.CreateElement("w:numPr")
		setVal(numPr.CreateElement("w:ilvl"), "0")
		setVal(numPr.CreateElement("w:numId"), strconv.Itoa(b.numbered[len(b.numbered)-1]))
	case bindery.QuoteParagraph:
		setVal(ppr.CreateElement("w:pStyle"), "Quote")
	case bindery.CaptionParagraph:
		setVal(ppr.CreateElement("w:pStyle"), "Caption")
	}

	if p.Spaced {
		setVals(ppr.CreateElement("w:spacing"), "w:before", "240", "w:after", "240")
	}
	switch {
	case p.FirstLineIndent:
		setVals(ppr.CreateElement("w:ind"), "w:firstLine", strconv.Itoa(firstLineIndent))
	case p.LeftIndent:
		setVals(ppr.CreateElement("w:ind"), "w:left", strconv.Itoa(firstLineIndent))
	}
	if p.Align == bindery.AlignCenter {
		setVal(ppr.CreateElement("w:jc"), "center")
	}
	if len(ppr.ChildElements()) == 0 {
		el.RemoveChild(ppr)
	}

	b.runs(el, p.Runs, p.FontSize)
}

func (b *docxBuilder) runs(p *etree.Element, runs []bindery.Run, fontSize int) {
	for _, r := range runs {
		switch {
		case r.Kind == bindery.BreakRun:
			p.CreateElement("w:r").CreateElement("w:br")
		case r.Kind != bindery.TextRun:
		case r.IsLink():
			link := p.CreateElement("w:hyperlink")
			if anchor, ok := strings.CutPrefix(r.Href, "#"); ok {
				link.CreateAttr("w:anchor", anchor)
			} else {
				link.CreateAttr("r:id", b.hyperlinkRel(r.Href))
			}
			textRun(link, r, fontSize)
		default:
			textRun(p, r, fontSize)
		}
	}
}

func textRun(parent *etree.Element, r bindery.Run, fontSize int) {
	el := parent.CreateElement("w:r")
	rpr := el.CreateElement("w:rPr")

	if r.Style.Has(bindery.Code) {
		fonts := rpr.CreateElement("w:rFonts")
		setVals(fonts, "w:ascii", "Courier New", "w:hAnsi", "Courier New", "w:cs", "Courier New")
	}
	if r.Style.Has(bindery.Bold) {
		rpr.CreateElement("w:b")
	}
	if r.Style.Has(bindery.Italic) {
		rpr.CreateElement("w:i")
	}
	if r.IsLink() || r.Style.Has(bindery.Citation) {
		setVal(rpr.CreateElement("w:color"), linkColor)
	}
	if fontSize > 0 {
		half := strconv.Itoa(fontSize * 2)
		setVal(rpr.CreateElement("w:sz"), half)
		setVal(rpr.CreateElement("w:szCs"), half)
	}
	if r.Style.Has(bindery.Underline) {
		setVal(rpr.CreateElement("w:u"), "single")
	}
	switch {
	case r.Style.Has(bindery.Superscript):
		setVal(rpr.CreateElement("w:vertAlign"), "superscript")
	case r.Style.Has(bindery.Subscript):
		setVal(rpr.CreateElement("w:vertAlign"), "subscript")
	}
	if len(rpr.ChildElements()) == 0 {
		el.RemoveChild(rpr)
	}

	t := el.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(xmlSafe(r.Text))
}

func (b *docxBuilder) table(body *etree.Element, t *bindery.Table) {
	if t.Columns <= 0 {
		return
	}
	width := strconv.Itoa(textWidthTwips / t.Columns)

	tbl := body.CreateElement("w:tbl")
	tblPr := tbl.CreateElement("w:tblPr")
	setVal(tblPr.CreateElement("w:tblStyle"), "TableGrid")
	setVals(tblPr.CreateElement("w:tblW"), "w:w", "0", "w:type", "auto")

	grid := tbl.CreateElement("w:tblGrid")
	for range t.Columns {
		setVals(grid.CreateElement("w:gridCol"), "w:w", width)
	}

	for _, row := range t.Rows {
		tr := tbl.CreateElement("w:tr")
		for i := range t.Columns {
			tc := tr.CreateElement("w:tc")
			setVals(tc.CreateElement("w:tcPr").CreateElement("w:tcW"), "w:w", width, "w:type", "dxa")
			p := tc.CreateElement("w:p")
			if i < len(row) {
				b.runs(p, row[i].Runs, 0)
			}
		}
	}
}

func (b *docxBuilder) image(body *etree.Element, img *bindery.Image) {
	if img.WidthPx <= 0 || img.HeightPx <= 0 {
		return
	}

	b.drawings++
	n := b.drawings
	ext := img.Format
	if ext == "" {
		ext = "png"
	}
	target := fmt.Sprintf("media/image%d.%s", n, ext)
	relID := b.addRel(relImage, target, false)
	b.media = append(b.media, mediaPart{target: target, data: img.Data})

	cx := int64(img.WidthIn * emuPerInch)
	cy := cx * int64(img.HeightPx) / int64(img.WidthPx)
	cxs, cys := strconv.FormatInt(cx, 10), strconv.FormatInt(cy, 10)
	id := strconv.Itoa(n)
	name := fmt.Sprintf("image%d.%s", n, ext)

	p := body.CreateElement("w:p")
	setVal(p.CreateElement("w:pPr").CreateElement("w:jc"), "center")
	inline := p.CreateElement("w:r").CreateElement("w:drawing").CreateElement("wp:inline")
	setVals(inline, "distT", "0", "distB", "0", "distL", "0", "distR", "0")
	setVals(inline.CreateElement("wp:extent"), "cx", cxs, "cy", cys)
	setVals(inline.CreateElement("wp:docPr"), "id", id, "name", "Picture "+id, "descr", xmlSafe(img.Alt))
	locks := inline.CreateElement("wp:cNvGraphicFramePr").CreateElement("a:graphicFrameLocks")
	locks.CreateAttr("noChangeAspect", "1")

	data := inline.CreateElement("a:graphic").CreateElement("a:graphicData")
	data.CreateAttr("uri", nsDrawingPic)
	pic := data.CreateElement("pic:pic")

	nv := pic.CreateElement("pic:nvPicPr")
	setVals(nv.CreateElement("pic:cNvPr"), "id", id, "name", name)
	nv.CreateElement("pic:cNvPicPr")

	fill := pic.CreateElement("pic:blipFill")
	fill.CreateElement("a:blip").CreateAttr("r:embed", relID)
	fill.CreateElement("a:stretch").CreateElement("a:fillRect")

	sp := pic.CreateElement("pic:spPr")
	xfrm := sp.CreateElement("a:xfrm")
	setVals(xfrm.CreateElement("a:off"), "x", "0", "y", "0")
	setVals(xfrm.CreateElement("a:ext"), "cx", cxs, "cy", cys)
	geom := sp.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
}

func setVal(el *etree.Element, v string) {
	el.CreateAttr("w:val", v)
}

// setVals sets attributes from alternating key/value pairs.
func setVals(el *etree.Element, kv ...string) {
	for i := 0; i+1 < len(kv); i += 2 {
		el.CreateAttr(kv[i], kv[i+1])
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// xmlSafe drops characters XML 1.0 cannot carry.
func xmlSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		}
		return r
	}, s)
}
