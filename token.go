package bindery

// TokenKind identifies the lexical class of a Token.
type TokenKind int

// Token kinds produced by the scanner.
const (
	TextToken TokenKind = iota
	OpenToken
	CloseToken
	SelfClosingToken
	DoctypeToken
	CommentToken
)

// String returns a readable name for the kind.
func (k TokenKind) String() string {
	switch k {
	case TextToken:
		return "text"
	case OpenToken:
		return "open"
	case CloseToken:
		return "close"
	case SelfClosingToken:
		return "self-closing"
	case DoctypeToken:
		return "doctype"
	case CommentToken:
		return "comment"
	}
	return "unknown"
}

// Token is a single lexical unit of a markup document.
type Token struct {
	Kind TokenKind

	// Name is the lower-cased tag name. Empty for text and comments.
	Name string

	// Attrs maps lower-cased attribute names to their raw values.
	// Boolean attributes map to the empty string.
	Attrs map[string]string

	// Line is the 1-based line on which the token starts.
	Line int

	// Raw is the exact source span of the token.
	Raw string
}
