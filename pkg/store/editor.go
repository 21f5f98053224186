package store

import (
	"log/slog"
	"sync"
)

type EditorState struct {
	Version      int           `json:"version"`
	Content      string        `json:"content"`
	SelectedFile *SelectedFile `json:"selectedFile"`
}

type EditorEvent struct {
	State EditorState
}

// Editor holds the primary document content and the file it was loaded from.
type Editor struct {
	mutex        sync.RWMutex
	content      string
	selectedFile *SelectedFile
	listeners    []chan EditorEvent
}

type EditorOptions struct {
	Content string
}

type EditorOptionFunc func(opts *EditorOptions)

func WithEditorContent(content string) EditorOptionFunc {
	return func(opts *EditorOptions) {
		opts.Content = content
	}
}

func NewEditorOptions(funcs ...EditorOptionFunc) *EditorOptions {
	opts := &EditorOptions{
		Content: DefaultEditorContent,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func NewEditor(funcs ...EditorOptionFunc) *Editor {
	opts := NewEditorOptions(funcs...)
	return &Editor{
		content:   opts.Content,
		listeners: make([]chan EditorEvent, 0),
	}
}

func (e *Editor) Content() string {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.content
}

// SelectedFile returns a copy of the current selection, or nil.
func (e *Editor) SelectedFile() *SelectedFile {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return copySelectedFile(e.selectedFile)
}

func (e *Editor) Snapshot() EditorState {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.snapshot()
}

func (e *Editor) SetContent(content string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.content = content

	slog.Debug("editor content updated", slog.Int("length", len(content)))

	e.notifyListeners()
}

// SetSelectedFile selects the given file. An empty filename clears the
// selection.
func (e *Editor) SetSelectedFile(filename string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.selectedFile = NewSelectedFile(filename)

	slog.Debug("editor selected file updated", slog.Any("selectedFile", e.selectedFile))

	e.notifyListeners()
}

func (e *Editor) ClearSelectedFile() {
	e.SetSelectedFile("")
}

func (e *Editor) Subscribe() chan EditorEvent {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	ch := make(chan EditorEvent, subscriberBuffer)
	e.listeners = append(e.listeners, ch)
	return ch
}

func (e *Editor) Unsubscribe(ch chan EditorEvent) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	for i, listener := range e.listeners {
		if listener == ch {
			close(listener)
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

func (e *Editor) snapshot() EditorState {
	return EditorState{
		Version:      StateVersion,
		Content:      e.content,
		SelectedFile: copySelectedFile(e.selectedFile),
	}
}

// notifyListeners must be called with the mutex held.
func (e *Editor) notifyListeners() {
	if len(e.listeners) == 0 {
		return
	}

	evt := EditorEvent{State: e.snapshot()}

	for _, ch := range e.listeners {
		select {
		case ch <- evt:
		default:
		}
	}
}

func copySelectedFile(f *SelectedFile) *SelectedFile {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}
