package workspace

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bornholm/mdstore/internal/filestore"
	"github.com/bornholm/mdstore/internal/http/handler/api"
	"github.com/bornholm/mdstore/pkg/client"
	"github.com/bornholm/mdstore/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func newTestWorkspace(t *testing.T, funcs ...filestore.OptionFunc) (*Workspace, afero.Fs) {
	fs := afero.NewMemMapFs()

	files := map[string]string{
		"welcome.md": "# Welcome",
		"scan.pdf":   "%PDF-1.4\nfake",
	}

	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	server := httptest.NewServer(api.NewHandler(filestore.New(fs, funcs...)))
	t.Cleanup(server.Close)

	baseURL, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	c := client.New(client.WithBaseURL(baseURL))

	ws := New(c, store.NewEditor(), store.NewPreview())
	t.Cleanup(ws.Close)

	return ws, fs
}

func TestWorkspaceOpenText(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ctx := context.Background()

	files, err := ws.Refresh(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "scan.pdf,welcome.md", strings.Join(files, ","); e != g {
		t.Errorf("files: expected '%s', got '%s'", e, g)
	}

	if err := ws.Open(ctx, "welcome.md"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "# Welcome", ws.Editor().Content(); e != g {
		t.Errorf("editor content: expected '%s', got '%s'", e, g)
	}

	if e, g := "# Welcome", ws.Preview().Content(); e != g {
		t.Errorf("preview content: expected '%s', got '%s'", e, g)
	}

	selected := ws.Editor().SelectedFile()
	if selected == nil {
		t.Fatalf("expected a selected file")
	}

	if e, g := "welcome.md", selected.Name; e != g {
		t.Errorf("selected.Name: expected '%s', got '%s'", e, g)
	}

	if e, g := "md", selected.Ext; e != g {
		t.Errorf("selected.Ext: expected '%s', got '%s'", e, g)
	}

	if e, g := "", ws.DisplayURL(); e != g {
		t.Errorf("DisplayURL(): expected '%s', got '%s'", e, g)
	}
}

func TestWorkspaceOpenMissingFile(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ctx := context.Background()

	if err := ws.Open(ctx, "welcome.md"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	err := ws.Open(ctx, "missing.md")
	if err == nil {
		t.Fatalf("expected an error")
	}

	if !client.IsNotFound(err) {
		t.Errorf("expected a not found error, got '%+v'", err)
	}

	if e, g := "# Welcome", ws.Editor().Content(); e != g {
		t.Errorf("editor content: expected '%s', got '%s'", e, g)
	}

	if e, g := "welcome.md", ws.Editor().SelectedFile().Name; e != g {
		t.Errorf("selected.Name: expected '%s', got '%s'", e, g)
	}
}

func TestWorkspaceOpenBinary(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ctx := context.Background()

	if err := ws.Open(ctx, "scan.pdf"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	displayURL := ws.DisplayURL()
	if !strings.HasPrefix(displayURL, "blob:") {
		t.Fatalf("DisplayURL(): expected a blob url, got '%s'", displayURL)
	}

	if e, g := store.DefaultEditorContent, ws.Editor().Content(); e != g {
		t.Errorf("editor content: expected '%s', got '%s'", e, g)
	}

	if e, g := "pdf", ws.Editor().SelectedFile().Ext; e != g {
		t.Errorf("selected.Ext: expected '%s', got '%s'", e, g)
	}

	registry := ws.client.Blobs()

	if e, g := 1, registry.Len(); e != g {
		t.Errorf("registry.Len(): expected %d, got %d", e, g)
	}

	if err := ws.Open(ctx, "welcome.md"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, registry.Len(); e != g {
		t.Errorf("registry.Len(): expected %d, got %d", e, g)
	}

	if _, err := registry.Resolve(displayURL); err == nil {
		t.Errorf("expected the previous object url to be revoked")
	}
}

func TestWorkspaceSave(t *testing.T) {
	ws, fs := newTestWorkspace(t)
	ctx := context.Background()

	if err := ws.Save(ctx); !errors.Is(err, ErrNoFileSelected) {
		t.Fatalf("expected ErrNoFileSelected, got '%+v'", err)
	}

	if err := ws.Open(ctx, "welcome.md"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	ws.Editor().SetContent("# Updated")

	if err := ws.Save(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := afero.ReadFile(fs, "welcome.md")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "# Updated", string(data); e != g {
		t.Errorf("file content: expected '%s', got '%s'", e, g)
	}

	if err := ws.SaveAs(ctx, "copy.md"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "copy.md", ws.Editor().SelectedFile().Name; e != g {
		t.Errorf("selected.Name: expected '%s', got '%s'", e, g)
	}

	if exists, _ := afero.Exists(fs, "copy.md"); !exists {
		t.Errorf("expected copy.md to exist")
	}
}

func TestWorkspaceCreateAndDelete(t *testing.T) {
	ws, fs := newTestWorkspace(t)
	ctx := context.Background()

	if _, err := ws.Refresh(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := ws.Create(ctx, "draft.md", "# Draft"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "scan.pdf,welcome.md,draft.md", strings.Join(ws.Files(), ","); e != g {
		t.Errorf("files: expected '%s', got '%s'", e, g)
	}

	if e, g := "# Draft", ws.Preview().Content(); e != g {
		t.Errorf("preview content: expected '%s', got '%s'", e, g)
	}

	if err := ws.Delete(ctx, "draft.md"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if selected := ws.Editor().SelectedFile(); selected != nil {
		t.Errorf("expected no selected file, got '%s'", selected.Name)
	}

	if exists, _ := afero.Exists(fs, "draft.md"); exists {
		t.Errorf("expected draft.md to be deleted")
	}

	if e, g := "scan.pdf,welcome.md", strings.Join(ws.Files(), ","); e != g {
		t.Errorf("files: expected '%s', got '%s'", e, g)
	}
}

func TestWorkspaceOpenMissingBinaryFile(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ctx := context.Background()

	if err := ws.Open(ctx, "scan.pdf"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	displayURL := ws.DisplayURL()
	registry := ws.client.Blobs()

	err := ws.Open(ctx, "missing.pdf")
	if err == nil {
		t.Fatalf("expected an error")
	}

	if !client.IsNotFound(err) {
		t.Errorf("expected a not found error, got '%+v'", err)
	}

	if e, g := "scan.pdf", ws.Editor().SelectedFile().Name; e != g {
		t.Errorf("selected.Name: expected '%s', got '%s'", e, g)
	}

	if e, g := displayURL, ws.DisplayURL(); e != g {
		t.Errorf("DisplayURL(): expected '%s', got '%s'", e, g)
	}

	if e, g := 1, registry.Len(); e != g {
		t.Errorf("registry.Len(): expected %d, got %d", e, g)
	}

	if _, err := registry.Resolve(displayURL); err != nil {
		t.Errorf("expected the current object url to stay valid, got '%+v'", err)
	}
}

func TestWorkspaceSaveBinaryFile(t *testing.T) {
	ws, fs := newTestWorkspace(t, filestore.WithWritableExtensions(".md", ".pdf"))
	ctx := context.Background()

	if err := ws.Open(ctx, "welcome.md"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := ws.Open(ctx, "scan.pdf"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := ws.Save(ctx); !errors.Is(err, ErrBinaryFile) {
		t.Errorf("Save: expected ErrBinaryFile, got '%+v'", err)
	}

	if err := ws.SaveAs(ctx, "other.pdf"); !errors.Is(err, ErrBinaryFile) {
		t.Errorf("SaveAs: expected ErrBinaryFile, got '%+v'", err)
	}

	data, err := afero.ReadFile(fs, "scan.pdf")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "%PDF-1.4\nfake", string(data); e != g {
		t.Errorf("scan.pdf content: expected '%s', got '%s'", e, g)
	}

	if exists, _ := afero.Exists(fs, "other.pdf"); exists {
		t.Errorf("expected other.pdf not to be created")
	}

	if e, g := "scan.pdf", ws.Editor().SelectedFile().Name; e != g {
		t.Errorf("selected.Name: expected '%s', got '%s'", e, g)
	}
}

func TestWorkspaceDeleteMissingFile(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ctx := context.Background()

	if _, err := ws.Refresh(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := ws.Open(ctx, "welcome.md"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	err := ws.Delete(ctx, "missing.md")
	if err == nil {
		t.Fatalf("expected an error")
	}

	if !client.IsNotFound(err) {
		t.Errorf("expected a not found error, got '%+v'", err)
	}

	if e, g := "scan.pdf,welcome.md", strings.Join(ws.Files(), ","); e != g {
		t.Errorf("files: expected '%s', got '%s'", e, g)
	}

	if e, g := "welcome.md", ws.Editor().SelectedFile().Name; e != g {
		t.Errorf("selected.Name: expected '%s', got '%s'", e, g)
	}

	if e, g := "# Welcome", ws.Editor().Content(); e != g {
		t.Errorf("editor content: expected '%s', got '%s'", e, g)
	}
}

func TestWorkspaceDeleteRefreshesFiles(t *testing.T) {
	ws, fs := newTestWorkspace(t)
	ctx := context.Background()

	if _, err := ws.Refresh(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// Created by another client
	if err := afero.WriteFile(fs, "other.md", []byte("# Other"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := ws.Delete(ctx, "welcome.md"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "other.md,scan.pdf", strings.Join(ws.Files(), ","); e != g {
		t.Errorf("files: expected '%s', got '%s'", e, g)
	}
}
