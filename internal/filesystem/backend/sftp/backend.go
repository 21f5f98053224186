package sftp

import (
	"context"
	"log/slog"
	"net"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/mdstore/internal/filesystem"
	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"github.com/spf13/afero"
	"github.com/spf13/afero/sftpfs"
	"golang.org/x/crypto/ssh"
)

type Backend struct {
	addr     string
	basePath string
	config   *ssh.ClientConfig
}

// Mount implements filesystem.Backend.
func (b *Backend) Mount(ctx context.Context, fn func(ctx context.Context, fs afero.Fs) error) error {
	ctx = slogx.WithAttrs(ctx, slog.String("sftpAddr", b.addr))

	sshClient, err := ssh.Dial("tcp", b.addr, b.config)
	if err != nil {
		return errors.Wrapf(err, "could not dial '%s'", b.addr)
	}

	defer func() {
		if err := sshClient.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			slog.ErrorContext(ctx, "could not close ssh connection", slogx.Error(errors.WithStack(err)))
		}
	}()

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		return errors.WithStack(err)
	}

	defer func() {
		if err := sftpClient.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			slog.ErrorContext(ctx, "could not close sftp connection", slogx.Error(errors.WithStack(err)))
		}
	}()

	var fs afero.Fs = sftpfs.New(sftpClient)

	if b.basePath != "" {
		fs = afero.NewBasePathFs(fs, b.basePath)
	}

	slog.DebugContext(ctx, "sftp filesystem mounted", slog.String("basePath", b.basePath))

	if err := fn(ctx, fs); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func New(addr string, basePath string, config *ssh.ClientConfig) *Backend {
	return &Backend{
		addr:     addr,
		config:   config,
		basePath: basePath,
	}
}

var _ filesystem.Backend = &Backend{}
