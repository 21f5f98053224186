package store

import (
	"log/slog"
	"sync"
)

type PreviewState struct {
	Version int    `json:"version"`
	Content string `json:"content"`
}

type PreviewEvent struct {
	State PreviewState
}

// Preview holds a second document content, independent from the editor,
// for a live preview or scratch pane.
type Preview struct {
	mutex     sync.RWMutex
	content   string
	listeners []chan PreviewEvent
}

func NewPreview() *Preview {
	return &Preview{
		content:   DefaultPreviewContent,
		listeners: make([]chan PreviewEvent, 0),
	}
}

func (p *Preview) Content() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.content
}

func (p *Preview) Snapshot() PreviewState {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return PreviewState{Version: StateVersion, Content: p.content}
}

func (p *Preview) SetContent(content string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.content = content

	slog.Debug("preview content updated", slog.Int("length", len(content)))

	if len(p.listeners) == 0 {
		return
	}

	evt := PreviewEvent{State: PreviewState{Version: StateVersion, Content: content}}

	for _, ch := range p.listeners {
		select {
		case ch <- evt:
		default:
		}
	}
}

// UpdateContent is an alias of SetContent.
//
// Deprecated: use SetContent.
func (p *Preview) UpdateContent(content string) {
	p.SetContent(content)
}

func (p *Preview) Subscribe() chan PreviewEvent {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	ch := make(chan PreviewEvent, subscriberBuffer)
	p.listeners = append(p.listeners, ch)
	return ch
}

func (p *Preview) Unsubscribe(ch chan PreviewEvent) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	for i, listener := range p.listeners {
		if listener == ch {
			close(listener)
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			return
		}
	}
}
