// Package markup implements the tolerant scanner, tree builder and inline
// resolver shared by every renderer and by the validator.
package markup

import (
	"strings"

	"github.com/fwojciec/bindery"
)

// Scan tokenizes src. It never fails: malformed tags are skipped and
// returned as defects so that scanning can continue.
func Scan(src string) ([]bindery.Token, []bindery.Defect) {
	s := &scanner{src: src, line: 1, textStart: -1}
	for s.pos < len(s.src) {
		if s.src[s.pos] == '<' && s.markup() {
			continue
		}
		s.text()
	}
	s.flushText()
	return s.tokens, s.defects
}

type scanner struct {
	src  string
	pos  int
	line int

	textStart int
	textLine  int

	tokens  []bindery.Token
	defects []bindery.Defect
}

// advance moves the cursor n bytes forward, keeping the line count.
func (s *scanner) advance(n int) {
	s.line += strings.Count(s.src[s.pos:s.pos+n], "\n")
	s.pos += n
}

// text consumes literal text up to the next '<' that may start markup.
func (s *scanner) text() {
	if s.textStart < 0 {
		s.textStart = s.pos
		s.textLine = s.line
	}
	n := 1
	if i := strings.IndexByte(s.src[s.pos+1:], '<'); i >= 0 {
		n += i
	} else {
		n = len(s.src) - s.pos
	}
	s.advance(n)
}

func (s *scanner) flushText() {
	if s.textStart < 0 {
		return
	}
	s.tokens = append(s.tokens, bindery.Token{
		Kind: bindery.TextToken,
		Line: s.textLine,
		Raw:  s.src[s.textStart:s.pos],
	})
	s.textStart = -1
}

func (s *scanner) emit(tok bindery.Token) {
	s.flushText()
	tok.Line = s.line
	s.tokens = append(s.tokens, tok)
	s.advance(len(tok.Raw))
}

// malformed records a defect for the fragment at the cursor and skips to the
// next '<' or the end of input.
func (s *scanner) malformed(tag string) {
	s.flushText()
	s.defects = append(s.defects, bindery.Defect{
		Kind: bindery.MalformedTag,
		Tag:  tag,
		Line: s.line,
	})
	n := len(s.src) - s.pos
	if i := strings.IndexByte(s.src[s.pos+1:], '<'); i >= 0 {
		n = i + 1
	}
	s.advance(n)
}

// markup lexes the construct starting at the cursor. It returns false when
// the '<' is literal text.
func (s *scanner) markup() bool {
	rest := s.src[s.pos:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		end := strings.Index(rest[4:], "-->")
		if end < 0 {
			s.flushText()
			s.defects = append(s.defects, bindery.Defect{Kind: bindery.MalformedTag, Tag: "!--", Line: s.line})
			s.advance(len(rest))
			return true
		}
		s.emit(bindery.Token{Kind: bindery.CommentToken, Raw: rest[:4+end+3]})
		return true

	case strings.HasPrefix(rest, "<!"):
		end := strings.IndexByte(rest, '>')
		if lt := strings.IndexByte(rest[1:], '<'); end < 0 || (lt >= 0 && lt+1 < end) {
			s.malformed("!")
			return true
		}
		raw := rest[:end+1]
		if strings.HasPrefix(strings.ToLower(raw), "<!doctype") {
			s.emit(bindery.Token{Kind: bindery.DoctypeToken, Name: "!doctype", Raw: raw})
		} else {
			s.emit(bindery.Token{Kind: bindery.CommentToken, Raw: raw})
		}
		return true

	case len(rest) > 2 && rest[1] == '/' && isLetter(rest[2]):
		s.closeTag(rest)
		return true

	case len(rest) > 1 && isLetter(rest[1]):
		s.openTag(rest)
		return true
	}
	return false
}

func (s *scanner) closeTag(rest string) {
	i := 2
	for i < len(rest) && isNameChar(rest[i]) {
		i++
	}
	name := strings.ToLower(rest[2:i])
	for i < len(rest) && rest[i] != '>' {
		if rest[i] == '<' {
			s.malformed(name)
			return
		}
		i++
	}
	if i >= len(rest) {
		s.malformed(name)
		return
	}
	s.emit(bindery.Token{Kind: bindery.CloseToken, Name: name, Raw: rest[:i+1]})
}

func (s *scanner) openTag(rest string) {
	i := 1
	for i < len(rest) && isNameChar(rest[i]) {
		i++
	}
	name := strings.ToLower(rest[1:i])
	attrs := make(map[string]string)
	selfClosing := false

	for {
		for i < len(rest) && isSpace(rest[i]) {
			i++
		}
		if i >= len(rest) || rest[i] == '<' {
			s.malformed(name)
			return
		}
		if rest[i] == '>' {
			i++
			break
		}
		if rest[i] == '/' {
			if i+1 < len(rest) && rest[i+1] == '>' {
				selfClosing = true
				i += 2
				break
			}
			i++
			continue
		}

		start := i
		for i < len(rest) && !isSpace(rest[i]) && !strings.ContainsRune("=></", rune(rest[i])) {
			i++
		}
		key := strings.ToLower(rest[start:i])
		if key == "" {
			i++
			continue
		}

		value := ""
		j := i
		for j < len(rest) && isSpace(rest[j]) {
			j++
		}
		if j < len(rest) && rest[j] == '=' {
			i = j + 1
			for i < len(rest) && isSpace(rest[i]) {
				i++
			}
			if i < len(rest) && (rest[i] == '"' || rest[i] == '\'') {
				q := rest[i]
				end := strings.IndexByte(rest[i+1:], q)
				if end < 0 {
					s.malformed(name)
					return
				}
				value = rest[i+1 : i+1+end]
				i += end + 2
			} else {
				start := i
				for i < len(rest) && !isSpace(rest[i]) && rest[i] != '>' && rest[i] != '<' {
					i++
				}
				value = rest[start:i]
			}
		}
		if _, dup := attrs[key]; !dup {
			attrs[key] = value
		}
	}

	kind := bindery.OpenToken
	if selfClosing || bindery.IsVoid(name) {
		kind = bindery.SelfClosingToken
	}
	s.emit(bindery.Token{Kind: kind, Name: name, Attrs: attrs, Raw: rest[:i]})

	if kind == bindery.OpenToken && (name == "script" || name == "style") {
		s.rawText(name)
	}
}

// rawText consumes the body of a script or style element verbatim.
func (s *scanner) rawText(name string) {
	body := s.src[s.pos:]
	end := indexCloseTag(body, name)
	if end < 0 {
		end = len(body)
	}
	if end > 0 {
		s.tokens = append(s.tokens, bindery.Token{
			Kind: bindery.TextToken,
			Line: s.line,
			Raw:  body[:end],
		})
		s.advance(end)
	}
}

// indexCloseTag returns the offset of the first "</name" in s, matched
// case-insensitively and not followed by another name character.
func indexCloseTag(s, name string) int {
	needle := "</" + name
	for i := 0; i+len(needle) <= len(s); i++ {
		if s[i] != '<' || !strings.EqualFold(s[i:i+len(needle)], needle) {
			continue
		}
		if k := i + len(needle); k < len(s) && isNameChar(s[k]) {
			continue
		}
		return i
	}
	return -1
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == ':' || c == '.'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
