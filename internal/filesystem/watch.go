package filesystem

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
	"github.com/progrium/watcher"
	"github.com/spf13/afero"
)

type ChangeKind int

const (
	ChangeCreated ChangeKind = iota
	ChangeModified
	ChangeRemoved
	ChangeRenamed
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	case ChangeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Change describes a modification of a watched file.
type Change struct {
	Kind ChangeKind
	Path string
	// OldPath is set on ChangeRenamed only.
	OldPath string
	// Existing is set on the ChangeCreated reported for files already present
	// when the watch started.
	Existing bool
}

// ChangeHandler receives the changes observed by Watch.
type ChangeHandler interface {
	HandleChange(ctx context.Context, change Change) error
}

type WatchOptions struct {
	// Extensions restricts the watched files to the given lower-cased
	// extensions, dot included. Every file is watched when empty.
	Extensions []string
	// Filter must match either the path or the base name of the file.
	Filter    *regexp.Regexp
	Interval  time.Duration
	Directory string
	Recursive bool
	// ReportExisting reports the files present when the watch starts as
	// created.
	ReportExisting bool
}

// Matches reports whether changes on the given path are forwarded.
func (o *WatchOptions) Matches(path string) bool {
	if path == "" {
		return false
	}

	if len(o.Extensions) > 0 && !slices.Contains(o.Extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}

	if o.Filter != nil && !o.Filter.MatchString(path) && !o.Filter.MatchString(filepath.Base(path)) {
		return false
	}

	return true
}

type WatchOptionFunc func(opts *WatchOptions)

func NewWatchOptions(funcs ...WatchOptionFunc) *WatchOptions {
	opts := &WatchOptions{
		Extensions:     []string{},
		Directory:      ".",
		Interval:       time.Second * 30,
		Filter:         nil,
		Recursive:      false,
		ReportExisting: true,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithInterval(interval time.Duration) WatchOptionFunc {
	return func(opts *WatchOptions) {
		opts.Interval = interval
	}
}

func WithDirectory(dir string) WatchOptionFunc {
	return func(opts *WatchOptions) {
		opts.Directory = dir
	}
}

func WithFilter(filter *regexp.Regexp) WatchOptionFunc {
	return func(opts *WatchOptions) {
		opts.Filter = filter
	}
}

// WithExtensions accepts extensions with or without their leading dot, in any
// case.
func WithExtensions(extensions ...string) WatchOptionFunc {
	return func(opts *WatchOptions) {
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
		opts.Extensions = normalized
	}
}

func WithRecursive(recursive bool) WatchOptionFunc {
	return func(opts *WatchOptions) {
		opts.Recursive = recursive
	}
}

func WithReportExisting(report bool) WatchOptionFunc {
	return func(opts *WatchOptions) {
		opts.ReportExisting = report
	}
}

// Watch polls the given filesystem until the context is canceled and forwards
// the changes of the matching files to the handler.
func Watch(ctx context.Context, fs afero.Fs, handler ChangeHandler, funcs ...WatchOptionFunc) error {
	opts := NewWatchOptions(funcs...)
	w := watcher.New()

	w.SetFileSystem(fs)
	w.IgnoreHiddenFiles(true)

	go func() {
		defer func() {
			go func() {
				w.Close()
				for range w.Event {
				}
				for range w.Error {
				}
			}()
		}()

		for {
			select {
			case event, ok := <-w.Event:
				if !ok {
					return
				}

				change, ok := changeFromEvent(opts, event)
				if !ok {
					slog.DebugContext(ctx, "ignoring event", slog.Any("event", event))
					continue
				}

				go handle(ctx, handler, change)

			case err, ok := <-w.Error:
				if !ok {
					return
				}

				slog.ErrorContext(ctx, "error while watching files", slogx.Error(errors.WithStack(err)))

			case <-ctx.Done():
				return
			}
		}
	}()

	if opts.Recursive {
		if err := w.AddRecursive(opts.Directory); err != nil {
			return errors.Wrapf(err, "could not add watched recursive directory '%s'", opts.Directory)
		}
	} else {
		if err := w.Add(opts.Directory); err != nil {
			return errors.Wrapf(err, "could not add watched directory '%s'", opts.Directory)
		}
	}

	if opts.ReportExisting {
		go func() {
			w.Wait()
			reportExistingFiles(ctx, fs, handler, opts)
		}()
	}

	slog.InfoContext(ctx, "starting watcher",
		slog.Duration("interval", opts.Interval),
		slog.String("directory", opts.Directory),
		slog.Bool("recursive", opts.Recursive),
		slog.Any("extensions", opts.Extensions),
	)
	defer slog.InfoContext(ctx, "watcher stopped")

	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	if err := w.Start(opts.Interval); err != nil {
		return errors.Wrap(err, "could not watch files")
	}

	return nil
}

// changeFromEvent maps a watcher event to a change. A rename crossing the
// watched set is reported as a creation or a removal.
func changeFromEvent(opts *WatchOptions, event watcher.Event) (Change, bool) {
	if event.FileInfo != nil && event.IsDir() {
		return Change{}, false
	}

	switch event.Op {
	case watcher.Create:
		return Change{Kind: ChangeCreated, Path: event.Path}, opts.Matches(event.Path)

	case watcher.Write:
		return Change{Kind: ChangeModified, Path: event.Path}, opts.Matches(event.Path)

	case watcher.Remove:
		return Change{Kind: ChangeRemoved, Path: event.Path}, opts.Matches(event.Path)

	case watcher.Rename, watcher.Move:
		oldMatches, newMatches := opts.Matches(event.OldPath), opts.Matches(event.Path)

		switch {
		case oldMatches && newMatches:
			return Change{Kind: ChangeRenamed, Path: event.Path, OldPath: event.OldPath}, true
		case oldMatches:
			return Change{Kind: ChangeRemoved, Path: event.OldPath}, true
		case newMatches:
			return Change{Kind: ChangeCreated, Path: event.Path}, true
		}
	}

	return Change{}, false
}

func handle(ctx context.Context, handler ChangeHandler, change Change) {
	ctx = slogx.WithAttrs(ctx, slog.String("change", change.Kind.String()), slog.String("path", change.Path))

	if err := handler.HandleChange(ctx, change); err != nil {
		slog.ErrorContext(ctx, "error while handling change", slogx.Error(errors.WithStack(err)))
	}
}

func reportExistingFiles(ctx context.Context, afs afero.Fs, handler ChangeHandler, opts *WatchOptions) {
	paths, err := listExistingFiles(afs, opts)
	if err != nil {
		slog.ErrorContext(ctx, "could not list pre-existing files", slogx.Error(errors.WithStack(err)))
		return
	}

	slog.InfoContext(ctx, "reporting pre-existing files", slog.Int("total", len(paths)))

	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}

		handle(ctx, handler, Change{Kind: ChangeCreated, Path: path, Existing: true})
	}
}

func listExistingFiles(afs afero.Fs, opts *WatchOptions) ([]string, error) {
	paths := make([]string, 0)

	if !opts.Recursive {
		entries, err := afero.ReadDir(afs, opts.Directory)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		for _, e := range entries {
			path := filepath.Join(opts.Directory, e.Name())
			if e.IsDir() || isHidden(e.Name()) || !opts.Matches(path) {
				continue
			}

			paths = append(paths, path)
		}

		return paths, nil
	}

	// Some remote backends walk an empty tree unless the base directory was
	// listed first
	if _, err := afero.ReadDir(afs, "."); err != nil {
		return nil, errors.WithStack(err)
	}

	err := afero.Walk(afs, opts.Directory, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return errors.WithStack(err)
		}

		if info.IsDir() {
			if path != opts.Directory && isHidden(info.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if isHidden(info.Name()) || !opts.Matches(path) {
			return nil
		}

		paths = append(paths, path)

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return paths, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
