package bindery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Author is a reference author.
type Author struct {
	Family string `json:"family"`
	Given  string `json:"given"`
}

// Reference is a bibliographic record. Every field except ID and Type is
// optional; empty strings mean absent.
type Reference struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Authors        []Author `json:"authors,omitempty"`
	Title          string   `json:"title,omitempty"`
	ContainerTitle string   `json:"container_title,omitempty"`
	Year           string   `json:"year,omitempty"`
	Volume         string   `json:"volume,omitempty"`
	Issue          string   `json:"issue,omitempty"`
	Pages          string   `json:"pages,omitempty"`
	Identifier     string   `json:"doi,omitempty"`
}

// ContainerField returns the bibliography field name used for the container
// title of this reference type.
func (r *Reference) ContainerField() string {
	switch r.Type {
	case "inproceedings", "incollection", "inbook":
		return "booktitle"
	}
	return "journal"
}

// UnmarshalJSON decodes a reference record, accepting the common aliases
// found in hand-maintained reference files and numeric scalar values.
func (r *Reference) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             scalar   `json:"id"`
		Type           scalar   `json:"type"`
		Authors        []Author `json:"authors"`
		Author         []Author `json:"author"`
		Title          scalar   `json:"title"`
		ContainerTitle scalar   `json:"container_title"`
		Journal        scalar   `json:"journal"`
		BookTitle      scalar   `json:"booktitle"`
		Year           scalar   `json:"year"`
		Volume         scalar   `json:"volume"`
		Issue          scalar   `json:"issue"`
		Number         scalar   `json:"number"`
		Pages          scalar   `json:"pages"`
		DOI            scalar   `json:"doi"`
		Identifier     scalar   `json:"identifier"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Reference{
		ID:             string(raw.ID),
		Type:           string(raw.Type),
		Authors:        raw.Authors,
		Title:          string(raw.Title),
		ContainerTitle: firstOf(raw.ContainerTitle, raw.Journal, raw.BookTitle),
		Year:           string(raw.Year),
		Volume:         string(raw.Volume),
		Issue:          firstOf(raw.Issue, raw.Number),
		Pages:          string(raw.Pages),
		Identifier:     firstOf(raw.DOI, raw.Identifier),
	}
	if len(r.Authors) == 0 {
		r.Authors = raw.Author
	}
	return nil
}

// scalar decodes a JSON string or number into its textual form.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = scalar(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	if i, err := n.Int64(); err == nil {
		*s = scalar(strconv.FormatInt(i, 10))
		return nil
	}
	*s = scalar(n.String())
	return nil
}

func firstOf(values ...scalar) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}
