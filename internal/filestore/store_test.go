package filestore

import (
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	fs := afero.NewMemMapFs()

	files := map[string]string{
		"b.md":      "# B",
		"a.md":      "# A",
		"scan.pdf":  "%PDF-1.4",
		"notes.txt": "ignored",
	}

	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	if err := fs.Mkdir("folder.md", 0o755); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return New(fs), fs
}

func TestStoreList(t *testing.T) {
	store, _ := newTestStore(t)

	files, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	expected := []string{"a.md", "b.md", "scan.pdf"}

	if e, g := len(expected), len(files); e != g {
		t.Fatalf("len(files): expected %d, got %d (%v)", e, g, files)
	}

	for i := range expected {
		if e, g := expected[i], files[i]; e != g {
			t.Errorf("files[%d]: expected '%s', got '%s'", i, e, g)
		}
	}
}

func TestStoreReadText(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	content, err := store.ReadText(ctx, "a.md")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "# A", content; e != g {
		t.Errorf("content: expected '%s', got '%s'", e, g)
	}

	for _, name := range []string{"missing.md", "notes.txt", "scan.pdf"} {
		if _, err := store.ReadText(ctx, name); !errors.Is(err, ErrNotFound) {
			t.Errorf("ReadText(%q): expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestStoreOpen(t *testing.T) {
	store, _ := newTestStore(t)

	file, stat, err := store.Open(context.Background(), "scan.pdf")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "%PDF-1.4", string(data); e != g {
		t.Errorf("data: expected '%s', got '%s'", e, g)
	}

	if e, g := int64(len(data)), stat.Size(); e != g {
		t.Errorf("stat.Size(): expected %d, got %d", e, g)
	}

	if _, _, err := store.Open(context.Background(), "a.md"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open(a.md): expected ErrNotFound, got %v", err)
	}
}

func TestStoreSave(t *testing.T) {
	store, fs := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "a.md", "# A v2"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.Save(ctx, "a.md", "short"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := afero.ReadFile(fs, "a.md")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "short", string(data); e != g {
		t.Errorf("data: expected '%s', got '%s'", e, g)
	}

	if err := store.Save(ctx, "scan.pdf", "nope"); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("Save(scan.pdf): expected ErrNotAllowed, got %v", err)
	}

	for _, name := range []string{"", ".", "..", "../escape.md", "dir/file.md", `dir\file.md`} {
		if err := store.Save(ctx, name, "nope"); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Save(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestStoreDelete(t *testing.T) {
	store, fs := newTestStore(t)
	ctx := context.Background()

	if err := store.Delete(ctx, "b.md"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	exists, err := afero.Exists(fs, "b.md")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if exists {
		t.Errorf("b.md should have been deleted")
	}

	if err := store.Delete(ctx, "b.md"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(b.md): expected ErrNotFound, got %v", err)
	}

	if err := store.Delete(ctx, "folder.md"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(folder.md): expected ErrNotFound, got %v", err)
	}
}

func TestStoreCustomExtensions(t *testing.T) {
	fs := afero.NewMemMapFs()

	store := New(fs,
		WithTextExtensions("md", ".TXT"),
		WithRawExtensions(),
		WithWritableExtensions("txt"),
	)

	if err := store.Save(context.Background(), "todo.txt", "- [ ] ship"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := KindText, store.Kind("TODO.TXT"); e != g {
		t.Errorf("Kind(TODO.TXT): expected %v, got %v", e, g)
	}

	if e, g := KindUnknown, store.Kind("scan.pdf"); e != g {
		t.Errorf("Kind(scan.pdf): expected %v, got %v", e, g)
	}
}
