// Package logger wraps zerolog.Logger with the constructors and
// context helpers the accountgate binaries share.
//
// Logger embeds zerolog.Logger, so the whole zerolog API (Debug, Info,
// Warn, Error, Fatal, ...) is available on *Logger directly. Code that
// handles a request should not hold its own logger; it recovers the
// request-scoped one with FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so helper methods can be added without
// shadowing the upstream type.
type Logger struct {
	zerolog.Logger
}

// newLogger builds the zerolog instance every constructor shares: Debug
// level globally, a "role" field naming the binary, timestamps, and a
// "func" caller field holding the fully-qualified function name.
func newLogger(out io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}

	l := zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// NewLogger returns the JSON-to-stdout logger used by server binaries.
// role labels the process (e.g. "accountgate-server") so log streams
// from different components can be told apart.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewClientLogger returns a logger for terminal clients, whose stdout
// belongs to the TUI. Entries are appended to a "logs" file next to the
// executable; if that file cannot be opened the logger falls back to
// stdout rather than dropping output.
func NewClientLogger(role string) *Logger {
	var out io.Writer = os.Stdout

	if execPath, err := os.Executable(); err == nil {
		logPath := filepath.Join(filepath.Dir(execPath), "logs")
		if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			out = f
		}
	}

	return newLogger(out, role)
}

// Nop returns a *Logger that discards everything. Meant for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a *Logger carrying a copy of the receiver's
// fields. Enriching the child leaves the parent untouched.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest recovers the request-scoped logger that middleware stored
// in the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext recovers the logger attached to ctx via zerolog's
// WithContext. When ctx carries none, zerolog hands back its global
// logger, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
