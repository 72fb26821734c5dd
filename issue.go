package bindery

// Severity is the severity of a validation issue.
type Severity string

// Severities. Only errors affect validity.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category tags the check family that produced an issue.
type Category string

// Issue categories.
const (
	CategoryHTML        Category = "html"
	CategoryEscape      Category = "escape"
	CategoryPlaceholder Category = "placeholder"
	CategoryA11y        Category = "a11y"
	CategoryLink        Category = "link"
	CategoryExport      Category = "export"
	CategoryControls    Category = "controls"
)

// DefectClass is the top-level defect taxonomy.
type DefectClass string

// Defect classes.
const (
	LexicalDefect       DefectClass = "lexical"
	StructuralDefect    DefectClass = "structural"
	AccessibilityDefect DefectClass = "accessibility"
	ContentDefect       DefectClass = "content"
	LinkDefect          DefectClass = "link"
	ExportDefect        DefectClass = "export"
)

// Class maps a category onto the defect taxonomy. Lexical defects are
// reported under CategoryHTML and cannot be told apart here; use
// Defect.Class for parse-time defects.
func (c Category) Class() DefectClass {
	switch c {
	case CategoryEscape, CategoryPlaceholder:
		return ContentDefect
	case CategoryA11y:
		return AccessibilityDefect
	case CategoryLink:
		return LinkDefect
	case CategoryExport:
		return ExportDefect
	}
	return StructuralDefect
}

// Issue is a single validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`

	// Line is the 1-based source line, or 0 when not applicable.
	Line int `json:"line,omitempty"`
}
