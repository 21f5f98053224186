package markdown

import "fmt"

type Document struct {
	html     []byte
	metadata map[string]any
	heading  string
}

// HTML returns the rendered document.
func (d *Document) HTML() []byte {
	return d.html
}

// Metadata returns the front matter of the document, or an empty map.
func (d *Document) Metadata() map[string]any {
	return d.metadata
}

// Title returns the "title" front matter entry, falling back to the first
// level 1 heading.
func (d *Document) Title() string {
	if title, exists := d.metadata["title"]; exists && title != nil {
		return fmt.Sprintf("%v", title)
	}

	return d.heading
}
