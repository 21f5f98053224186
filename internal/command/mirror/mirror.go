package mirror

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/mdstore/internal/filesystem"
	"github.com/bornholm/mdstore/pkg/client"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

type mirror struct {
	client    *client.Client
	backend   filesystem.Backend
	delay     time.Duration
	semaphore chan struct{}

	mutex      sync.Mutex
	fs         afero.Fs
	debouncers map[string]*debouncer
}

func newMirror(client *client.Client, backend filesystem.Backend, delay time.Duration, concurrency int) *mirror {
	return &mirror{
		client:     client,
		backend:    backend,
		delay:      delay,
		semaphore:  make(chan struct{}, concurrency),
		debouncers: make(map[string]*debouncer),
	}
}

func (m *mirror) Watch(ctx context.Context, funcs ...filesystem.WatchOptionFunc) error {
	err := m.backend.Mount(ctx, func(ctx context.Context, fs afero.Fs) error {
		slog.InfoContext(ctx, "filesystem mounted")

		m.setFs(fs)
		defer m.setFs(nil)

		if err := filesystem.Watch(ctx, fs, m, funcs...); err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// HandleChange implements filesystem.ChangeHandler.
func (m *mirror) HandleChange(ctx context.Context, change filesystem.Change) error {
	switch change.Kind {
	case filesystem.ChangeCreated:
		if err := m.upload(ctx, change.Path); err != nil {
			return errors.Wrap(err, "could not upload file")
		}

	case filesystem.ChangeModified:
		m.uploadDebounced(ctx, change.Path)

	case filesystem.ChangeRemoved:
		if err := m.remove(ctx, change.Path); err != nil {
			return errors.Wrap(err, "could not remove file")
		}

	case filesystem.ChangeRenamed:
		ctx = slogx.WithAttrs(ctx, slog.String("oldPath", change.OldPath))

		if filepath.Base(change.OldPath) != filepath.Base(change.Path) {
			if err := m.remove(ctx, change.OldPath); err != nil {
				return errors.Wrap(err, "could not remove renamed file")
			}
		}

		if err := m.upload(ctx, change.Path); err != nil {
			return errors.Wrap(err, "could not upload renamed file")
		}
	}

	return nil
}

func (m *mirror) upload(ctx context.Context, path string) error {
	m.semaphore <- struct{}{}
	defer func() {
		<-m.semaphore
	}()

	fs := m.getFs()
	if fs == nil {
		return errors.New("filesystem is not mounted")
	}

	file, err := fs.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}

	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return errors.WithStack(err)
	}

	filename := filepath.Base(path)

	if err := m.client.WriteFile(ctx, filename, string(content)); err != nil {
		return errors.WithStack(err)
	}

	slog.InfoContext(ctx, "file uploaded", slog.String("filename", filename))

	return nil
}

func (m *mirror) remove(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	m.semaphore <- struct{}{}
	defer func() {
		<-m.semaphore
	}()

	filename := filepath.Base(path)

	if err := m.client.RemoveFile(ctx, filename); err != nil {
		if client.IsNotFound(err) {
			slog.InfoContext(ctx, "file not found in store, skipping", slog.String("filename", filename))
			return nil
		}

		return errors.WithStack(err)
	}

	slog.InfoContext(ctx, "file removed", slog.String("filename", filename))

	return nil
}

func (m *mirror) uploadDebounced(ctx context.Context, path string) {
	m.mutex.Lock()
	d, exists := m.debouncers[path]
	if !exists {
		d = &debouncer{delay: m.delay}
		m.debouncers[path] = d
	}
	m.mutex.Unlock()

	d.schedule(func() {
		m.mutex.Lock()
		delete(m.debouncers, path)
		m.mutex.Unlock()

		if err := m.upload(ctx, path); err != nil {
			slog.ErrorContext(ctx, "could not upload file", slogx.Error(errors.WithStack(err)))
		}
	})
}

func (m *mirror) setFs(fs afero.Fs) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.fs = fs
}

func (m *mirror) getFs() afero.Fs {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.fs
}

var _ filesystem.ChangeHandler = &mirror{}

type debouncer struct {
	mutex sync.Mutex
	timer *time.Timer
	delay time.Duration
}

func (d *debouncer) schedule(f func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, f)
}
