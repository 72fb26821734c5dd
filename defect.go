package bindery

import "fmt"

// DefectKind identifies a parse-time defect.
type DefectKind int

// Defect kinds recorded by the scanner and tree builder.
const (
	MalformedTag DefectKind = iota
	UnclosedTag
	ExtraClosingTag
	ImplicitlyClosedTag
)

// Defect is a lexical or structural problem recovered from during parsing.
type Defect struct {
	Kind DefectKind
	Tag  string
	Line int

	// ClosedBy names the closing tag that forced an implicit close.
	ClosedBy string
}

// Class returns the taxonomy class of the defect.
func (d Defect) Class() DefectClass {
	if d.Kind == MalformedTag {
		return LexicalDefect
	}
	return StructuralDefect
}

// Message returns a human-readable description of the defect.
func (d Defect) Message() string {
	switch d.Kind {
	case MalformedTag:
		if d.Tag == "" {
			return "Malformed tag"
		}
		return fmt.Sprintf("Malformed tag: <%s", d.Tag)
	case UnclosedTag:
		return fmt.Sprintf("Unclosed tag: <%s>", d.Tag)
	case ExtraClosingTag:
		return fmt.Sprintf("Extra closing tag: </%s>", d.Tag)
	case ImplicitlyClosedTag:
		return fmt.Sprintf("Tag <%s> implicitly closed by </%s>", d.Tag, d.ClosedBy)
	}
	return "Unknown defect"
}
