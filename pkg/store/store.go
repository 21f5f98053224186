// Package store holds the in-memory state shown to the user: the content of
// the document being edited, which file it comes from, and a secondary
// preview content.
//
// Stores are plain values owned by whoever composes the UI. They have no
// persistence and mutate only through their setters.
package store

// StateVersion identifies the shape of the snapshots emitted by the stores.
const StateVersion = 1

const (
	DefaultEditorContent  = "# Welcome to the three-pane Markdown editor\n\nSelect a document on the left or type some content in the quick input area on the right."
	DefaultPreviewContent = "# Preview\n\nNothing to preview yet."
)

const subscriberBuffer = 16
