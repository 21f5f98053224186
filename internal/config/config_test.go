package config

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestParseDefaults(t *testing.T) {
	conf, err := ParseWithEnvironment(map[string]string{})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":8000", conf.HTTP.Address; e != g {
		t.Errorf("conf.HTTP.Address: expected '%s', got '%s'", e, g)
	}

	if e, g := "/api/files", conf.HTTP.FilesPath; e != g {
		t.Errorf("conf.HTTP.FilesPath: expected '%s', got '%s'", e, g)
	}

	if e, g := "local://./markdown_files", conf.Storage.Filesystem; e != g {
		t.Errorf("conf.Storage.Filesystem: expected '%s', got '%s'", e, g)
	}

	if e, g := "*", strings.Join(conf.HTTP.CORS.AllowedOrigins, ","); e != g {
		t.Errorf("conf.HTTP.CORS.AllowedOrigins: expected '%s', got '%s'", e, g)
	}

	if conf.HTTP.RateLimit.Enabled {
		t.Errorf("conf.HTTP.RateLimit.Enabled: expected false")
	}
}

func TestParseOverrides(t *testing.T) {
	conf, err := ParseWithEnvironment(map[string]string{
		"MDSTORE_HTTP_ADDRESS":              "127.0.0.1:9000",
		"MDSTORE_STORAGE_FILESYSTEM":        "memory://",
		"MDSTORE_STORAGE_RAW_EXTENSIONS":    ".pdf,.png",
		"MDSTORE_HTTP_RATE_LIMIT_ENABLED":   "true",
		"MDSTORE_HTTP_RATE_LIMIT_INTERVAL":  "1s",
		"MDSTORE_HTTP_CORS_ALLOWED_ORIGINS": "http://localhost:5173,http://localhost:4173",
		"MDSTORE_LOGGER_LEVEL":              "-4",
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "127.0.0.1:9000", conf.HTTP.Address; e != g {
		t.Errorf("conf.HTTP.Address: expected '%s', got '%s'", e, g)
	}

	if e, g := "memory://", conf.Storage.Filesystem; e != g {
		t.Errorf("conf.Storage.Filesystem: expected '%s', got '%s'", e, g)
	}

	if e, g := 2, len(conf.Storage.RawExtensions); e != g {
		t.Errorf("len(conf.Storage.RawExtensions): expected %d, got %d", e, g)
	}

	if !conf.HTTP.RateLimit.Enabled {
		t.Errorf("conf.HTTP.RateLimit.Enabled: expected true")
	}

	if e, g := time.Second, conf.HTTP.RateLimit.Interval; e != g {
		t.Errorf("conf.HTTP.RateLimit.Interval: expected %v, got %v", e, g)
	}

	if e, g := 2, len(conf.HTTP.CORS.AllowedOrigins); e != g {
		t.Errorf("len(conf.HTTP.CORS.AllowedOrigins): expected %d, got %d", e, g)
	}

	if e, g := -4, conf.Logger.Level; e != g {
		t.Errorf("conf.Logger.Level: expected %d, got %d", e, g)
	}
}
