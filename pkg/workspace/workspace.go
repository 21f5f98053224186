// Package workspace wires a file store client with the editor and preview
// stores of a single user session.
package workspace

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/mdstore/pkg/blob"
	"github.com/bornholm/mdstore/pkg/client"
	"github.com/bornholm/mdstore/pkg/store"
	"github.com/pkg/errors"
)

var (
	ErrNoFileSelected = errors.New("no file selected")
	ErrBinaryFile     = errors.New("binary files cannot be written from the editor")
)

type Workspace struct {
	client  *client.Client
	editor  *store.Editor
	preview *store.Preview

	binaryExtensions []string

	mutex     sync.Mutex
	files     []string
	objectURL *blob.ObjectURL
}

func New(client *client.Client, editor *store.Editor, preview *store.Preview, funcs ...OptionFunc) *Workspace {
	opts := NewOptions(funcs...)
	return &Workspace{
		client:           client,
		editor:           editor,
		preview:          preview,
		binaryExtensions: opts.BinaryExtensions,
		files:            []string{},
	}
}

func (w *Workspace) Editor() *store.Editor {
	return w.editor
}

func (w *Workspace) Preview() *store.Preview {
	return w.preview
}

// Files returns the file list retrieved by the last call to Refresh().
func (w *Workspace) Files() []string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return slices.Clone(w.files)
}

// DisplayURL returns the object url of the currently open binary file, or an
// empty string.
func (w *Workspace) DisplayURL() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.objectURL == nil {
		return ""
	}

	return w.objectURL.String()
}

func (w *Workspace) Refresh(ctx context.Context) ([]string, error) {
	files, err := w.client.ListFiles(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	w.mutex.Lock()
	w.files = slices.Clone(files)
	w.mutex.Unlock()

	return files, nil
}

// Open loads the given file and selects it. Binary files are exposed through
// DisplayURL() and leave the editor content untouched. Nothing changes if the
// file cannot be retrieved.
func (w *Workspace) Open(ctx context.Context, filename string) error {
	ctx = slogx.WithAttrs(ctx, slog.String("filename", filename))

	if w.IsBinary(filename) {
		objectURL, err := w.client.ReadFileAsDisplayableURL(ctx, filename)
		if err != nil {
			return errors.WithStack(err)
		}

		w.replaceObjectURL(objectURL)
		w.editor.SetSelectedFile(filename)

		slog.DebugContext(ctx, "binary file opened")

		return nil
	}

	content, err := w.client.ReadFile(ctx, filename)
	if err != nil {
		return errors.WithStack(err)
	}

	w.replaceObjectURL(nil)
	w.editor.SetContent(content)
	w.editor.SetSelectedFile(filename)
	w.preview.SetContent(content)

	slog.DebugContext(ctx, "text file opened")

	return nil
}

// Save writes the editor content to the selected file. The editor content
// does not belong to a selected binary file, which is never overwritten.
func (w *Workspace) Save(ctx context.Context) error {
	selected := w.editor.SelectedFile()
	if selected == nil {
		return errors.WithStack(ErrNoFileSelected)
	}

	if w.IsBinary(selected.Name) {
		return errors.Wrapf(ErrBinaryFile, "could not save '%s'", selected.Name)
	}

	if err := w.client.WriteFile(ctx, selected.Name, w.editor.Content()); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// SaveAs writes the editor content to the given file and selects it.
func (w *Workspace) SaveAs(ctx context.Context, filename string) error {
	if filename == "" {
		return errors.WithStack(ErrNoFileSelected)
	}

	if w.IsBinary(filename) {
		return errors.Wrapf(ErrBinaryFile, "could not save '%s'", filename)
	}

	if err := w.client.WriteFile(ctx, filename, w.editor.Content()); err != nil {
		return errors.WithStack(err)
	}

	w.replaceObjectURL(nil)
	w.editor.SetSelectedFile(filename)
	w.addFile(filename)

	return nil
}

// Create writes a new file and opens it.
func (w *Workspace) Create(ctx context.Context, filename string, content string) error {
	if err := w.client.WriteFile(ctx, filename, content); err != nil {
		return errors.WithStack(err)
	}

	w.addFile(filename)

	w.replaceObjectURL(nil)
	w.editor.SetContent(content)
	w.editor.SetSelectedFile(filename)
	w.preview.SetContent(content)

	return nil
}

// Delete removes the given file and refreshes the file list. If it was the
// selected one, the selection is cleared.
func (w *Workspace) Delete(ctx context.Context, filename string) error {
	ctx = slogx.WithAttrs(ctx, slog.String("filename", filename))

	if err := w.client.RemoveFile(ctx, filename); err != nil {
		return errors.WithStack(err)
	}

	if _, err := w.Refresh(ctx); err != nil {
		slog.WarnContext(ctx, "could not refresh file list after deletion", slogx.Error(err))

		w.mutex.Lock()
		w.files = slices.DeleteFunc(w.files, func(f string) bool { return f == filename })
		w.mutex.Unlock()
	}

	if selected := w.editor.SelectedFile(); selected != nil && selected.Name == filename {
		w.replaceObjectURL(nil)
		w.editor.ClearSelectedFile()
	}

	return nil
}

// Close releases the resources held by the workspace.
func (w *Workspace) Close() {
	w.replaceObjectURL(nil)
}

// IsBinary reports whether the given file is fetched as raw bytes instead of
// text content.
func (w *Workspace) IsBinary(filename string) bool {
	return slices.Contains(w.binaryExtensions, store.Extension(filename))
}

func (w *Workspace) replaceObjectURL(objectURL *blob.ObjectURL) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.objectURL != nil {
		w.objectURL.Revoke()
	}

	w.objectURL = objectURL
}

func (w *Workspace) addFile(filename string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if slices.Contains(w.files, filename) {
		return
	}

	w.files = append(w.files, filename)
}
