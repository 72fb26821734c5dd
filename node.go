package bindery

import "strings"

// NodeType identifies the kind of a Node.
type NodeType int

// Node types.
const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
)

// voidElements never accept children and never take a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoid reports whether tag is a void element.
func IsVoid(tag string) bool {
	return voidElements[tag]
}

// Node is an element, a text leaf, or the document root of a parsed tree.
// A parent owns its children; the parent pointer is a lookup aid only.
type Node struct {
	Type  NodeType
	Tag   string
	Attrs map[string]string

	// Text holds the raw source text of a text leaf. Entities are not decoded.
	Text string

	// Line is the 1-based source line where the node starts.
	Line int

	Children []*Node

	parent *Node
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// AppendChild adds child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	child.parent = n
	n.Children = append(n.Children, child)
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n.Type == ElementNode && n.Tag == tag
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	if n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// HasClass reports whether the class attribute contains the given token.
func (n *Node) HasClass(class string) bool {
	v, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first element with the given tag in document order,
// including n itself.
func (n *Node) Find(tag string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.IsElement(tag) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every element with one of the given tags in document order.
func (n *Node) FindAll(tags ...string) []*Node {
	var nodes []*Node
	n.Walk(func(c *Node) bool {
		if c.Type == ElementNode {
			for _, tag := range tags {
				if c.Tag == tag {
					nodes = append(nodes, c)
					break
				}
			}
		}
		return true
	})
	return nodes
}

// TextContent concatenates the raw text of all descendant text leaves,
// excluding script and style bodies.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		switch {
		case c.Type == TextNode:
			sb.WriteString(c.Text)
		case c.IsElement("script"), c.IsElement("style"):
			return false
		}
		return true
	})
	return sb.String()
}

// HeadingLevel returns 1-6 for h1-h6 elements and 0 otherwise.
func (n *Node) HeadingLevel() int {
	if n.Type != ElementNode || len(n.Tag) != 2 || n.Tag[0] != 'h' {
		return 0
	}
	if l := int(n.Tag[1] - '0'); l >= 1 && l <= 6 {
		return l
	}
	return 0
}

// Document is a parsed markup document.
type Document struct {
	Root *Node

	// Doctype holds the declaration body (e.g. "DOCTYPE html") when the
	// document starts with one. Empty otherwise.
	Doctype string

	// Defects lists every lexical and structural defect found while parsing.
	Defects []Defect

	ids map[string]*Node
}

// NewDocument returns an empty document with a root node.
func NewDocument() *Document {
	return &Document{
		Root: &Node{Type: DocumentNode},
		ids:  make(map[string]*Node),
	}
}

// IndexID registers n under id unless the id is already taken.
func (d *Document) IndexID(id string, n *Node) {
	if id == "" {
		return
	}
	if d.ids == nil {
		d.ids = make(map[string]*Node)
	}
	if _, exists := d.ids[id]; !exists {
		d.ids[id] = n
	}
}

// ElementByID returns the first element carrying the given id, or nil.
func (d *Document) ElementByID(id string) *Node {
	return d.ids[id]
}

// Body returns the body element, or the root when the document has none.
func (d *Document) Body() *Node {
	if body := d.Root.Find("body"); body != nil {
		return body
	}
	return d.Root
}
