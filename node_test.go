package bindery_test

import (
	"testing"

	"github.com/fwojciec/bindery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree builds <body><h2 class="a b">Hi</h2><p id="x">one <script>no</script>two</p></body>.
func tree() (*bindery.Document, *bindery.Node, *bindery.Node) {
	doc := bindery.NewDocument()
	body := &bindery.Node{Type: bindery.ElementNode, Tag: "body"}
	h2 := &bindery.Node{Type: bindery.ElementNode, Tag: "h2", Attrs: map[string]string{"class": "a b"}}
	h2.AppendChild(&bindery.Node{Type: bindery.TextNode, Text: "Hi"})
	p := &bindery.Node{Type: bindery.ElementNode, Tag: "p", Attrs: map[string]string{"id": "x"}}
	p.AppendChild(&bindery.Node{Type: bindery.TextNode, Text: "one "})
	script := &bindery.Node{Type: bindery.ElementNode, Tag: "script"}
	script.AppendChild(&bindery.Node{Type: bindery.TextNode, Text: "no"})
	p.AppendChild(script)
	p.AppendChild(&bindery.Node{Type: bindery.TextNode, Text: "two"})
	body.AppendChild(h2)
	body.AppendChild(p)
	doc.Root.AppendChild(body)
	doc.IndexID("x", p)
	return doc, h2, p
}

func TestNode(t *testing.T) {
	t.Parallel()

	t.Run("children point back at their parent", func(t *testing.T) {
		t.Parallel()

		doc, h2, _ := tree()
		require.NotNil(t, h2.Parent())
		assert.Equal(t, "body", h2.Parent().Tag)
		assert.Nil(t, doc.Root.Parent())
	})

	t.Run("find and find all follow document order", func(t *testing.T) {
		t.Parallel()

		doc, h2, p := tree()
		assert.Same(t, p, doc.Root.Find("p"))
		assert.Nil(t, doc.Root.Find("table"))
		assert.Equal(t, []*bindery.Node{h2, p}, doc.Root.FindAll("p", "h2"))
	})

	t.Run("text content skips script bodies", func(t *testing.T) {
		t.Parallel()

		doc, _, _ := tree()
		assert.Equal(t, "Hione two", doc.Root.TextContent())
	})

	t.Run("classes and attributes", func(t *testing.T) {
		t.Parallel()

		_, h2, p := tree()
		assert.True(t, h2.HasClass("b"))
		assert.False(t, h2.HasClass("ab"))
		id, ok := p.Attr("id")
		assert.True(t, ok)
		assert.Equal(t, "x", id)
		_, ok = h2.Attr("id")
		assert.False(t, ok)
	})

	t.Run("heading levels", func(t *testing.T) {
		t.Parallel()

		_, h2, p := tree()
		assert.Equal(t, 2, h2.HeadingLevel())
		assert.Zero(t, p.HeadingLevel())
		assert.Zero(t, (&bindery.Node{Type: bindery.ElementNode, Tag: "h7"}).HeadingLevel())
		assert.Zero(t, (&bindery.Node{Type: bindery.ElementNode, Tag: "hr"}).HeadingLevel())
	})
}

func TestDocument(t *testing.T) {
	t.Parallel()

	t.Run("first id registration wins", func(t *testing.T) {
		t.Parallel()

		doc, h2, p := tree()
		doc.IndexID("x", h2)
		assert.Same(t, p, doc.ElementByID("x"))
		assert.Nil(t, doc.ElementByID("missing"))
	})

	t.Run("body falls back to the root", func(t *testing.T) {
		t.Parallel()

		doc, _, _ := tree()
		assert.Equal(t, "body", doc.Body().Tag)
		empty := bindery.NewDocument()
		assert.Same(t, empty.Root, empty.Body())
	})

	t.Run("void elements", func(t *testing.T) {
		t.Parallel()

		assert.True(t, bindery.IsVoid("br"))
		assert.True(t, bindery.IsVoid("img"))
		assert.False(t, bindery.IsVoid("p"))
	})
}
