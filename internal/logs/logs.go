// Package logs builds the process logger and carries it through contexts.
package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Level is the shared level for every handler built by New.
var Level = new(slog.LevelVar)

// New builds a logger that writes text to w and, when the process is a
// systemd service, also to the journal. A journal setup failure is not
// fatal: the terminal handler reports it and logging proceeds without.
func New(w io.Writer) *slog.Logger {
	terminal := slog.NewTextHandler(w, &slog.HandlerOptions{Level: Level})
	handlers := []slog.Handler{terminal}

	if underSystemdService() {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{})
		if err != nil {
			slog.New(terminal).Warn("systemd journal handler unavailable", "error", err)
		} else {
			handlers = append(handlers, journal)
		}
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

func underSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.SplitN(strings.TrimSpace(string(content)), ":", 3)
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(parts[2]), ".service")
}

type ctxKey struct{}

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From extracts the logger from ctx, falling back to slog.Default.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
