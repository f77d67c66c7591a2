// Package server exposes the status line over a Unix domain socket. Every
// accepted connection triggers exactly one render; the result is written as
// the whole response and the connection is closed. Connections are handled
// one at a time on the goroutine that calls Serve.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultSocket is the socket path used when none is configured.
	DefaultSocket = "/tmp/tmux-status-bar.sock"

	// DefaultSocketMode restricts the socket to its owner.
	DefaultSocketMode os.FileMode = 0600

	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Renderer produces one status line for the given instant.
type Renderer interface {
	Render(ctx context.Context, now time.Time) []byte
}

// Options configures a Server.
type Options struct {
	// Socket is the filesystem path of the Unix socket.
	Socket string
	// SocketMode is applied to the socket file after binding.
	SocketMode os.FileMode
	// WriteTimeout bounds writing one response. Zero means no limit.
	WriteTimeout time.Duration
}

// Server answers status line requests on a Unix socket.
type Server struct {
	opts     Options
	renderer Renderer
	logger   *zap.Logger
	now      func() time.Time

	listener *net.UnixListener
}

// New creates a Server. Call Listen, then Serve.
func New(opts Options, renderer Renderer, logger *zap.Logger) *Server {
	if opts.Socket == "" {
		opts.Socket = DefaultSocket
	}
	if opts.SocketMode == 0 {
		opts.SocketMode = DefaultSocketMode
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		opts:     opts,
		renderer: renderer,
		logger:   logger.Named("server"),
		now:      time.Now,
	}
}

// Addr returns the socket path.
func (s *Server) Addr() string { return s.opts.Socket }

// Listen removes a stale socket left by a previous run, binds the socket and
// sets its permissions. The socket is created with SocketMode already applied,
// so it is never reachable with wider permissions. A non-socket file at the
// path is an error.
func (s *Server) Listen() error {
	if err := removeStale(s.opts.Socket); err != nil {
		return err
	}

	var l *net.UnixListener
	err := withSocketMode(s.opts.SocketMode, func() error {
		var err error
		l, err = net.ListenUnix("unix", &net.UnixAddr{Name: s.opts.Socket, Net: "unix"})
		return err
	})
	if err != nil {
		return fmt.Errorf("binding %s: %w", s.opts.Socket, err)
	}
	if err := os.Chmod(s.opts.Socket, s.opts.SocketMode); err != nil {
		l.Close()
		return fmt.Errorf("setting socket mode: %w", err)
	}

	s.listener = l
	s.logger.Info("Listening", zap.String("socket", s.opts.Socket))
	return nil
}

// Serve accepts and answers connections until ctx is cancelled, then closes
// the listener (removing the socket file) and returns nil. Accept errors are
// logged and retried with backoff.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	l := s.listener
	stop := context.AfterFunc(ctx, func() { l.Close() })
	defer stop()
	defer l.Close()

	var delay time.Duration
	for {
		conn, err := l.AcceptUnix()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.logger.Info("Server stopped")
				return nil
			}

			if delay == 0 {
				delay = minAcceptDelay
			} else {
				delay *= 2
			}
			if delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			s.logger.Error("Accept failed",
				zap.Error(err),
				zap.Duration("retry_in", delay))

			select {
			case <-time.After(delay):
			case <-ctx.Done():
			}
			continue
		}

		delay = 0
		s.handle(ctx, conn)
	}
}

// ListenAndServe calls Listen and then Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// handle renders one line, writes it to conn and closes conn. Nothing is read
// from the client.
func (s *Server) handle(ctx context.Context, conn *net.UnixConn) {
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Debug("Closing connection failed", zap.Error(err))
		}
	}()

	if pid, ok := peerPID(conn); ok {
		s.logger.Debug("Accepted connection", zap.Int32("pid", pid))
	}

	line := s.renderer.Render(ctx, s.now())

	if s.opts.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout)); err != nil {
			s.logger.Debug("Setting write deadline failed", zap.Error(err))
		}
	}
	if _, err := conn.Write(line); err != nil {
		s.logger.Error("Writing status line failed", zap.Error(err))
		return
	}
	s.logger.Debug("Served status line", zap.Int("bytes", len(line)))
}

// removeStale deletes a leftover socket file at path.
func removeStale(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.Mode().Type() != fs.ModeSocket {
		return fmt.Errorf("%s exists and is not a socket", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing stale socket: %w", err)
	}
	return nil
}
