package etree

import (
	"archive/zip"
	"fmt"
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/bindery"
)

// XML namespaces used by WordprocessingML packages.
const (
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsWordMain      = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsOfficeRels    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsDrawingWP     = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsDrawingMain   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsDrawingPic    = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	relOfficeDoc    = nsOfficeRels + "/officeDocument"
	relStyles       = nsOfficeRels + "/styles"
	relNumbering    = nsOfficeRels + "/numbering"
	relHyperlink    = nsOfficeRels + "/hyperlink"
	relImage        = nsOfficeRels + "/image"
	typeDocument    = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	typeStyles      = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	typeNumbering   = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	typeRels        = "application/vnd.openxmlformats-package.relationships+xml"
	xmlDeclaration  = `version="1.0" encoding="UTF-8" standalone="yes"`
	emuPerInch      = 914400
	twipsPerInch    = 1440
	textWidthTwips  = 6*twipsPerInch + twipsPerInch/2
	firstLineIndent = 720
)

// packageTime stamps every zip entry so identical documents produce
// identical bytes.
var packageTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

var _ bindery.RichWriter = (*DocxWriter)(nil)

// DocxWriter writes rich documents as Office Open XML word-processing
// packages.
type DocxWriter struct {
	// template holds styles taken from a template package, if any.
	template *etree.Document
}

// NewDocxWriter returns a new DocxWriter.
func NewDocxWriter() *DocxWriter {
	return &DocxWriter{}
}

// WriteRich writes doc to w as a .docx package.
func (d *DocxWriter) WriteRich(w io.Writer, doc *bindery.RichDocument) error {
	if doc == nil {
		return bindery.Errorf(bindery.EINVALID, "rich document required")
	}

	b := newDocxBuilder()
	body := b.document()
	for _, block := range doc.Blocks {
		b.block(body, block)
	}
	b.sectionProperties(body)

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRels()},
		{"word/document.xml", b.doc},
		{"word/_rels/document.xml.rels", b.relationships()},
		{"word/styles.xml", d.styles()},
		{"word/numbering.xml", b.numbering()},
	}
	for _, p := range parts {
		data, err := p.doc.WriteToBytes()
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", p.name, err)
		}
		if err := writeEntry(zw, p.name, data); err != nil {
			return err
		}
	}
	for _, m := range b.media {
		if err := writeEntry(zw, "word/"+m.target, m.data); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish package: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: packageTime,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDeclaration)
	return doc
}

func contentTypes() *etree.Document {
	doc := newXMLDocument()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsContentTypes)

	defaults := []struct{ ext, typ string }{
		{"rels", typeRels},
		{"xml", "application/xml"},
		{"png", "image/png"},
		{"jpeg", "image/jpeg"},
		{"gif", "image/gif"},
	}
	for _, d := range defaults {
		el := types.CreateElement("Default")
		el.CreateAttr("Extension", d.ext)
		el.CreateAttr("ContentType", d.typ)
	}

	overrides := []struct{ part, typ string }{
		{"/word/document.xml", typeDocument},
		{"/word/styles.xml", typeStyles},
		{"/word/numbering.xml", typeNumbering},
	}
	for _, o := range overrides {
		el := types.CreateElement("Override")
		el.CreateAttr("PartName", o.part)
		el.CreateAttr("ContentType", o.typ)
	}
	return doc
}

func packageRels() *etree.Document {
	doc := newXMLDocument()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsPackageRels)
	rel := rels.CreateElement("Relationship")
	rel.CreateAttr("Id", "rId1")
	rel.CreateAttr("Type", relOfficeDoc)
	rel.CreateAttr("Target", "word/document.xml")
	return doc
}

// relationship is an entry of word/_rels/document.xml.rels.
type relationship struct {
	id       string
	typ      string
	target   string
	external bool
}

type mediaPart struct {
	target string
	data   []byte
}

// docxBuilder accumulates document.xml along with the relationships, media
// and list instances it references.
type docxBuilder struct {
	doc        *etree.Document
	rels       []relationship
	hyperlinks map[string]string
	media      []mediaPart
	drawings   int

	// numbered holds one list instance per run of consecutive numbered
	// paragraphs so each list restarts at 1.
	numbered   []int
	inNumbered bool
}

// Numbering instances. Ordered lists get fresh ids from firstOrderedNum on.
const (
	bulletNum       = 1
	firstOrderedNum = 2
)

func newDocxBuilder() *docxBuilder {
	return &docxBuilder{
		doc: newXMLDocument(),
		rels: []relationship{
			{id: "rId1", typ: relStyles, target: "styles.xml"},
			{id: "rId2", typ: relNumbering, target: "numbering.xml"},
		},
		hyperlinks: make(map[string]string),
	}
}

func (b *docxBuilder) addRel(typ, target string, external bool) string {
	id := fmt.Sprintf("rId%d", len(b.rels)+1)
	b.rels = append(b.rels, relationship{id: id, typ: typ, target: target, external: external})
	return id
}

// hyperlinkRel returns the relationship id for an external target, reusing
// the relationship when the target repeats.
func (b *docxBuilder) hyperlinkRel(target string) string {
	if id, ok := b.hyperlinks[target]; ok {
		return id
	}
	id := b.addRel(relHyperlink, target, true)
	b.hyperlinks[target] = id
	return id
}

func (b *docxBuilder) relationships() *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsPackageRels)
	for _, r := range b.rels {
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", r.id)
		el.CreateAttr("Type", r.typ)
		el.CreateAttr("Target", r.target)
		if r.external {
			el.CreateAttr("TargetMode", "External")
		}
	}
	return doc
}
