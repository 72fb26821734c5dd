package validate

import (
	"regexp"
	"strings"

	"github.com/fwojciec/bindery"
)

var escapeMessages = []struct {
	letter  byte
	message string
}{
	{'n', `Literal \n found - use <br> or <p>`},
	{'t', `Literal \t found - use CSS spacing`},
	{'r', `Literal \r found - remove`},
}

// checkEscapes reports literal escape sequences, one error per sequence kind
// per line. A backslash run of odd length before the letter is a literal
// escape; an even run is an escaped backslash followed by a plain letter.
func checkEscapes(src string, r *bindery.Report) {
	for i, line := range strings.Split(src, "\n") {
		if !strings.Contains(line, `\`) {
			continue
		}
		for _, esc := range escapeMessages {
			if hasLiteralEscape(line, esc.letter) {
				r.AddError(bindery.CategoryEscape, i+1, "%s", esc.message)
			}
		}
	}
}

func hasLiteralEscape(line string, letter byte) bool {
	run := 0
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\':
			run++
		case line[i] == letter && run%2 == 1:
			return true
		default:
			run = 0
		}
	}
	return false
}

var placeholders = []struct {
	re      *regexp.Regexp
	message string
}{
	{regexp.MustCompile(`\{\{[^}]+\}\}`), "Template placeholder found"},
	{regexp.MustCompile(`(?i)TODO`), "TODO marker found"},
	{regexp.MustCompile(`(?i)FIXME`), "FIXME marker found"},
	{regexp.MustCompile(`(?i)XXX`), "XXX marker found"},
	{regexp.MustCompile(`(?i)Lorem ipsum`), "Lorem ipsum placeholder found"},
}

// checkPlaceholders reports leftover template residue, one error per pattern
// per offending line.
func checkPlaceholders(src string, r *bindery.Report) {
	for i, line := range strings.Split(src, "\n") {
		for _, p := range placeholders {
			if p.re.MatchString(line) {
				r.AddError(bindery.CategoryPlaceholder, i+1, "%s", p.message)
			}
		}
	}
}
