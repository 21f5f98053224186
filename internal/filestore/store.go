// Package filestore implements the flat file collection served by the
// reference server on top of an afero filesystem.
package filestore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrNotAllowed  = errors.New("not allowed")
	ErrInvalidName = errors.New("invalid name")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindRaw
)

type Store struct {
	fs       afero.Fs
	text     []string
	raw      []string
	writable []string
}

func New(fs afero.Fs, funcs ...OptionFunc) *Store {
	opts := NewOptions(funcs...)
	return &Store{
		fs:       fs,
		text:     normalizeExtensions(opts.TextExtensions),
		raw:      normalizeExtensions(opts.RawExtensions),
		writable: normalizeExtensions(opts.WritableExtensions),
	}
}

// Kind returns how the given file is exposed by the store.
func (s *Store) Kind(name string) Kind {
	ext := strings.ToLower(filepath.Ext(name))

	switch {
	case slices.Contains(s.text, ext):
		return KindText
	case slices.Contains(s.raw, ext):
		return KindRaw
	default:
		return KindUnknown
	}
}

// List returns the sorted names of the files exposed by the store.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, ".")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	files := make([]string, 0, len(entries))

	for _, e := range entries {
		if !e.Mode().IsRegular() {
			continue
		}

		if s.Kind(e.Name()) == KindUnknown {
			continue
		}

		files = append(files, e.Name())
	}

	sort.Strings(files)

	return files, nil
}

// ReadText returns the content of a text file.
func (s *Store) ReadText(ctx context.Context, name string) (string, error) {
	if err := s.checkReadable(name, KindText); err != nil {
		return "", errors.WithStack(err)
	}

	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		return "", errors.WithStack(translateError(err))
	}

	return string(data), nil
}

// Open returns a reader on a raw file. The caller must close it.
func (s *Store) Open(ctx context.Context, name string) (afero.File, os.FileInfo, error) {
	if err := s.checkReadable(name, KindRaw); err != nil {
		return nil, nil, errors.WithStack(err)
	}

	file, err := s.fs.Open(name)
	if err != nil {
		return nil, nil, errors.WithStack(translateError(err))
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, errors.WithStack(translateError(err))
	}

	if stat.IsDir() {
		file.Close()
		return nil, nil, errors.WithStack(ErrNotFound)
	}

	return file, stat, nil
}

// Save creates or replaces a writable file.
func (s *Store) Save(ctx context.Context, name string, content string) error {
	if err := ValidateName(name); err != nil {
		return errors.WithStack(err)
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(s.writable, ext) {
		return errors.Wrapf(ErrNotAllowed, "only %s files allowed", strings.Join(s.writable, ", "))
	}

	file, err := s.fs.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := io.WriteString(file, content); err != nil {
		file.Close()
		return errors.WithStack(err)
	}

	if err := file.Close(); err != nil {
		return errors.WithStack(err)
	}

	slog.DebugContext(ctx, "file saved", slog.String("name", name), slog.Int("size", len(content)))

	return nil
}

// Delete removes a file.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return errors.WithStack(err)
	}

	stat, err := s.fs.Stat(name)
	if err != nil {
		return errors.WithStack(translateError(err))
	}

	if !stat.Mode().IsRegular() {
		return errors.WithStack(ErrNotFound)
	}

	if err := s.fs.Remove(name); err != nil {
		return errors.WithStack(translateError(err))
	}

	slog.DebugContext(ctx, "file deleted", slog.String("name", name))

	return nil
}

// ValidateName rejects names that would escape the flat collection.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.Wrapf(ErrInvalidName, "'%s'", name)
	case strings.ContainsAny(name, "/\\\x00"):
		return errors.Wrapf(ErrInvalidName, "'%s' contains a path separator", name)
	}

	return nil
}

func (s *Store) checkReadable(name string, kind Kind) error {
	if err := ValidateName(name); err != nil {
		return errors.WithStack(err)
	}

	if s.Kind(name) != kind {
		return errors.WithStack(ErrNotFound)
	}

	return nil
}

func translateError(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}
