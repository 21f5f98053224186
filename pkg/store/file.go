package store

import "strings"

// SelectedFile identifies the file currently open in the editor.
type SelectedFile struct {
	// Name is the full filename, extension included.
	Name string `json:"name"`
	// Ext is the lower-cased extension, without the dot. It is empty when the
	// filename has no dot.
	Ext string `json:"ext"`
}

// Stem returns the filename without its extension.
func (f SelectedFile) Stem() string {
	if i := strings.LastIndex(f.Name, "."); i >= 0 {
		return f.Name[:i]
	}
	return f.Name
}

// Extension returns the lower-cased substring after the last dot of the
// filename, or an empty string if there is none.
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// NewSelectedFile returns nil for an empty filename.
func NewSelectedFile(filename string) *SelectedFile {
	if filename == "" {
		return nil
	}

	return &SelectedFile{
		Name: filename,
		Ext:  Extension(filename),
	}
}
