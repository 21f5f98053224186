package store

import "testing"

func TestPreview(t *testing.T) {
	preview := NewPreview()

	if e, g := DefaultPreviewContent, preview.Content(); e != g {
		t.Errorf("preview.Content(): expected '%s', got '%s'", e, g)
	}

	if DefaultPreviewContent == DefaultEditorContent {
		t.Errorf("preview and editor defaults should differ")
	}

	events := preview.Subscribe()
	defer preview.Unsubscribe(events)

	preview.SetContent("first")
	preview.UpdateContent("second")

	if e, g := "second", preview.Content(); e != g {
		t.Errorf("preview.Content(): expected '%s', got '%s'", e, g)
	}

	if e, g := "first", (<-events).State.Content; e != g {
		t.Errorf("event content: expected '%s', got '%s'", e, g)
	}

	if e, g := "second", (<-events).State.Content; e != g {
		t.Errorf("event content: expected '%s', got '%s'", e, g)
	}
}

func TestStoresAreIndependent(t *testing.T) {
	editor := NewEditor()
	preview := NewPreview()

	editor.SetContent("editor")

	if e, g := DefaultPreviewContent, preview.Content(); e != g {
		t.Errorf("preview.Content(): expected '%s', got '%s'", e, g)
	}

	preview.SetContent("preview")

	if e, g := "editor", editor.Content(); e != g {
		t.Errorf("editor.Content(): expected '%s', got '%s'", e, g)
	}
}
