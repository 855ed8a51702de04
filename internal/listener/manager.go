package listener

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// SessionRunner serves one interactive connection.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

// ConnectionManager hands accepted connections to the console and tracks
// how many are open.
type ConnectionManager struct {
	sessions SessionRunner
	active   atomic.Int64
}

func NewConnectionManager(sessions SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
	}
}

// AcceptConnection runs a console session on conn. logger carries the
// connection's attributes; nil falls back to the default logger.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	n := m.active.Add(1)
	defer m.active.Add(-1)

	logger.InfoContext(ctx, "console session started", "active", n)
	if err := m.sessions.RunSession(ctx, conn); err != nil && ctx.Err() == nil {
		logger.WarnContext(ctx, "console session", "error", err)
	}
	logger.InfoContext(ctx, "console session ended")
}

// Active returns the number of open sessions.
func (m *ConnectionManager) Active() int {
	return int(m.active.Load())
}
