package etree

import (
	"strconv"

	"github.com/beevik/etree"
)

const bodyFont = "Times New Roman"

// defaultStyles builds word/styles.xml: Times New Roman 12pt double-spaced
// defaults, title and heading styles, list, quote and caption paragraphs,
// and a bordered table grid.
func defaultStyles() *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsWordMain)

	defaults := root.CreateElement("w:docDefaults")
	rpr := defaults.CreateElement("w:rPrDefault").CreateElement("w:rPr")
	setVals(rpr.CreateElement("w:rFonts"),
		"w:ascii", bodyFont, "w:hAnsi", bodyFont, "w:eastAsia", bodyFont, "w:cs", bodyFont)
	setVal(rpr.CreateElement("w:sz"), "24")
	setVal(rpr.CreateElement("w:szCs"), "24")
	ppr := defaults.CreateElement("w:pPrDefault").CreateElement("w:pPr")
	setVals(ppr.CreateElement("w:spacing"), "w:after", "0", "w:line", "480", "w:lineRule", "auto")

	normal := paragraphStyle(root, "Normal", "Normal")
	normal.CreateAttr("w:default", "1")

	title := paragraphStyle(root, "Title", "Title")
	basedOn(title)
	setVal(title.CreateElement("w:pPr").CreateElement("w:jc"), "center")
	styleRun(title, true, false, 32)

	sizes := []int{32, 28, 26, 24, 24}
	for i, size := range sizes {
		level := i + 1
		h := paragraphStyle(root, "Heading"+strconv.Itoa(level), "heading "+strconv.Itoa(level))
		basedOn(h)
		hppr := h.CreateElement("w:pPr")
		hppr.CreateElement("w:keepNext")
		setVals(hppr.CreateElement("w:spacing"), "w:before", "240", "w:after", "0")
		setVal(hppr.CreateElement("w:outlineLvl"), strconv.Itoa(i))
		styleRun(h, true, level >= 4, size)
	}

	bullet := paragraphStyle(root, "ListBullet", "List Bullet")
	basedOn(bullet)
	listProperties(bullet, bulletNum)

	number := paragraphStyle(root, "ListNumber", "List Number")
	basedOn(number)
	listProperties(number, firstOrderedNum)

	quote := paragraphStyle(root, "Quote", "Quote")
	basedOn(quote)
	setVals(quote.CreateElement("w:pPr").CreateElement("w:ind"), "w:left", strconv.Itoa(firstLineIndent))
	styleRun(quote, false, true, 0)

	caption := paragraphStyle(root, "Caption", "caption")
	basedOn(caption)
	setVal(caption.CreateElement("w:pPr").CreateElement("w:jc"), "center")
	styleRun(caption, false, true, 10)

	tableGrid(root)
	return doc
}

func paragraphStyle(root *etree.Element, id, name string) *etree.Element {
	s := root.CreateElement("w:style")
	s.CreateAttr("w:type", "paragraph")
	s.CreateAttr("w:styleId", id)
	setVal(s.CreateElement("w:name"), name)
	return s
}

func basedOn(s *etree.Element) {
	setVal(s.CreateElement("w:basedOn"), "Normal")
	setVal(s.CreateElement("w:qFormat"), "1")
}

func styleRun(s *etree.Element, bold, italic bool, size int) {
	rpr := s.CreateElement("w:rPr")
	if bold {
		rpr.CreateElement("w:b")
	}
	if italic {
		rpr.CreateElement("w:i")
	}
	if size > 0 {
		setVal(rpr.CreateElement("w:sz"), strconv.Itoa(size*2))
		setVal(rpr.CreateElement("w:szCs"), strconv.Itoa(size*2))
	}
}

func listProperties(s *etree.Element, numID int) {
	numPr := s.CreateElement("w:pPr").CreateElement("w:numPr")
	setVal(numPr.CreateElement("w:numId"), strconv.Itoa(numID))
}

func tableGrid(root *etree.Element) {
	s := root.CreateElement("w:style")
	s.CreateAttr("w:type", "table")
	s.CreateAttr("w:styleId", "TableGrid")
	setVal(s.CreateElement("w:name"), "Table Grid")
	borders := s.CreateElement("w:tblPr").CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		setVals(borders.CreateElement("w:"+side),
			"w:val", "single", "w:sz", "4", "w:space", "0", "w:color", "auto")
	}
}

// numbering builds word/numbering.xml with one bullet instance and one
// restarting decimal instance per ordered list.
func (b *docxBuilder) numbering() *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("w:numbering")
	root.CreateAttr("xmlns:w", nsWordMain)

	abstractNum(root, 0, "bullet", "•")
	abstractNum(root, 1, "decimal", "%1.")

	num(root, bulletNum, 0, false)
	num(root, firstOrderedNum, 1, false)
	for _, id := range b.numbered {
		if id != firstOrderedNum {
			num(root, id, 1, true)
		}
	}
	return doc
}

func abstractNum(root *etree.Element, id int, format, text string) {
	an := root.CreateElement("w:abstractNum")
	an.CreateAttr("w:abstractNumId", strconv.Itoa(id))
	lvl := an.CreateElement("w:lvl")
	lvl.CreateAttr("w:ilvl", "0")
	setVal(lvl.CreateElement("w:start"), "1")
	setVal(lvl.CreateElement("w:numFmt"), format)
	setVal(lvl.CreateElement("w:lvlText"), text)
	setVal(lvl.CreateElement("w:lvlJc"), "left")
	setVals(lvl.CreateElement("w:pPr").CreateElement("w:ind"), "w:left", "720", "w:hanging", "360")
}

func num(root *etree.Element, id, abstractID int, restart bool) {
	n := root.CreateElement("w:num")
	n.CreateAttr("w:numId", strconv.Itoa(id))
	setVal(n.CreateElement("w:abstractNumId"), strconv.Itoa(abstractID))
	if restart {
		override := n.CreateElement("w:lvlOverride")
		override.CreateAttr("w:ilvl", "0")
		setVal(override.CreateElement("w:startOverride"), "1")
	}
}
