package blob

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestRegistryLifecycle(t *testing.T) {
	registry := NewRegistry(WithOrigin("test"))

	data := []byte("%PDF-1.4\n%fake pdf payload")

	objectURL := registry.CreateObjectURL(New(data, ""))

	if !strings.HasPrefix(objectURL.String(), "blob:test/") {
		t.Errorf("objectURL.String(): unexpected value '%s'", objectURL.String())
	}

	if e, g := 1, registry.Len(); e != g {
		t.Errorf("registry.Len(): expected %d, got %d", e, g)
	}

	if e, g := int64(len(data)), registry.Size(); e != g {
		t.Errorf("registry.Size(): expected %d, got %d", e, g)
	}

	b, err := registry.Resolve(objectURL.String())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "application/pdf", b.Type(); e != g {
		t.Errorf("b.Type(): expected '%s', got '%s'", e, g)
	}

	if e, g := string(data), string(b.Bytes()); e != g {
		t.Errorf("b.Bytes(): expected '%s', got '%s'", e, g)
	}

	if !objectURL.Revoke() {
		t.Errorf("objectURL.Revoke(): expected true on first call")
	}

	if objectURL.Revoke() {
		t.Errorf("objectURL.Revoke(): expected false on second call")
	}

	if _, err := registry.Resolve(objectURL.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("registry.Resolve(): expected ErrNotFound, got %v", err)
	}

	if e, g := 0, registry.Len(); e != g {
		t.Errorf("registry.Len(): expected %d, got %d", e, g)
	}
}

func TestRegistryForeignURL(t *testing.T) {
	registry := NewRegistry(WithOrigin("local"))
	other := NewRegistry(WithOrigin("other"))

	objectURL := other.CreateObjectURL(New([]byte("foo"), "text/plain"))
	defer objectURL.Revoke()

	if _, err := registry.Resolve(objectURL.String()); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("registry.Resolve(): expected ErrInvalidURL, got %v", err)
	}

	if registry.Revoke(objectURL.String()) {
		t.Errorf("registry.Revoke(): expected false for a foreign url")
	}

	for _, raw := range []string{"", "blob:", "blob:local/", "blob:local/a/b", "http://local/foo"} {
		if _, err := registry.Resolve(raw); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("registry.Resolve(%q): expected ErrInvalidURL, got %v", raw, err)
		}
	}
}

func TestRegistryRevokeAll(t *testing.T) {
	registry := NewRegistry()

	for range 5 {
		registry.CreateObjectURL(New([]byte("foo"), "text/plain"))
	}

	if e, g := 5, registry.RevokeAll(); e != g {
		t.Errorf("registry.RevokeAll(): expected %d, got %d", e, g)
	}

	if e, g := int64(0), registry.Size(); e != g {
		t.Errorf("registry.Size(): expected %d, got %d", e, g)
	}
}

func TestHandler(t *testing.T) {
	registry := NewRegistry()

	objectURL := registry.CreateObjectURL(New([]byte("# Hello"), "text/markdown"))

	server := httptest.NewServer(NewHandler(registry))
	defer server.Close()

	res, err := http.Get(server.URL + "/" + objectURL.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer res.Body.Close()

	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Fatalf("res.StatusCode: expected %d, got %d", e, g)
	}

	if e, g := "text/markdown", res.Header.Get("Content-Type"); e != g {
		t.Errorf("Content-Type: expected '%s', got '%s'", e, g)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "# Hello", string(body); e != g {
		t.Errorf("body: expected '%s', got '%s'", e, g)
	}

	objectURL.Revoke()

	res, err = http.Get(server.URL + "/" + objectURL.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	res.Body.Close()

	if e, g := http.StatusNotFound, res.StatusCode; e != g {
		t.Errorf("res.StatusCode: expected %d, got %d", e, g)
	}
}
