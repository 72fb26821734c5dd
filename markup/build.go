package markup

import (
	"sort"
	"strings"

	"github.com/fwojciec/bindery"
)

// Parse scans and builds src into a document. Lexical and structural
// defects are merged in source-line order.
func Parse(src string) *bindery.Document {
	tokens, lexical := Scan(src)
	doc := Build(tokens)
	if len(lexical) > 0 {
		doc.Defects = append(lexical, doc.Defects...)
		sort.SliceStable(doc.Defects, func(i, j int) bool {
			return doc.Defects[i].Line < doc.Defects[j].Line
		})
	}
	return doc
}

// Build constructs the element tree for tokens, repairing improper nesting.
// Every repair is recorded in the document's defects.
func Build(tokens []bindery.Token) *bindery.Document {
	b := &builder{doc: bindery.NewDocument()}
	for _, tok := range tokens {
		b.handle(tok)
	}
	b.finish()
	return b.doc
}

// Balance returns the structural defects of a token stream. It runs the same
// algorithm as Build.
func Balance(tokens []bindery.Token) []bindery.Defect {
	return Build(tokens).Defects
}

type builder struct {
	doc   *bindery.Document
	stack []*bindery.Node

	// significant is set once a token other than leading whitespace is seen.
	significant bool
}

func (b *builder) top() *bindery.Node {
	if len(b.stack) == 0 {
		return b.doc.Root
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) handle(tok bindery.Token) {
	switch tok.Kind {
	case bindery.TextToken:
		if strings.TrimSpace(tok.Raw) != "" {
			b.significant = true
		}
		b.top().AppendChild(&bindery.Node{Type: bindery.TextNode, Text: tok.Raw, Line: tok.Line})

	case bindery.CommentToken:
		b.significant = true

	case bindery.DoctypeToken:
		if !b.significant {
			b.doc.Doctype = strings.TrimSpace(tok.Raw[2 : len(tok.Raw)-1])
		}
		b.significant = true

	case bindery.OpenToken, bindery.SelfClosingToken:
		b.significant = true
		n := &bindery.Node{
			Type:  bindery.ElementNode,
			Tag:   tok.Name,
			Attrs: tok.Attrs,
			Line:  tok.Line,
		}
		b.top().AppendChild(n)
		if id, ok := n.Attr("id"); ok {
			b.doc.IndexID(id, n)
		}
		if tok.Kind == bindery.OpenToken && !bindery.IsVoid(tok.Name) {
			b.stack = append(b.stack, n)
		}

	case bindery.CloseToken:
		b.significant = true
		b.close(tok)
	}
}

func (b *builder) close(tok bindery.Token) {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].Tag != tok.Name {
			continue
		}
		for j := len(b.stack) - 1; j > i; j-- {
			b.doc.Defects = append(b.doc.Defects, bindery.Defect{
				Kind:     bindery.ImplicitlyClosedTag,
				Tag:      b.stack[j].Tag,
				Line:     b.stack[j].Line,
				ClosedBy: tok.Name,
			})
		}
		b.stack = b.stack[:i]
		return
	}
	b.doc.Defects = append(b.doc.Defects, bindery.Defect{
		Kind: bindery.ExtraClosingTag,
		Tag:  tok.Name,
		Line: tok.Line,
	})
}

// finish closes every frame still open at the end of input.
func (b *builder) finish() {
	for _, n := range b.stack {
		b.doc.Defects = append(b.doc.Defects, bindery.Defect{
			Kind: bindery.UnclosedTag,
			Tag:  n.Tag,
			Line: n.Line,
		})
	}
	b.stack = nil
}
