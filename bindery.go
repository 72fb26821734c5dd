// Package bindery provides a tolerant markup engine for hand-edited HTML
// content. It parses loosely formed documents into an element tree, renders
// them to text, Markdown and rich word-processing documents, exports
// bibliographies, and audits documents for structural, accessibility and
// content-hygiene defects.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, rod/) or, for the
// dependency-free core, after their role (markup/, render/, validate/).
package bindery
