package bindery

// Section represents a heading in a document outline.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Summary is the JSON export of a document.
type Summary struct {
	File      string    `json:"file"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	WordCount int       `json:"word_count"`
	Sections  []Section `json:"sections"`
}

// Summarizer builds the JSON summary of an HTML document.
type Summarizer interface {
	Summarize(file, html string) (*Summary, error)
}
