package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/avillagomez/backoffice-backend/pkg/env"
)

type ctxKey struct{}

// Options configures the process-wide logger.
type Options struct {
	ServiceName string
	Level       string
	WarnStack   bool
	Output      io.Writer
}

type Logger struct {
	log       zerolog.Logger
	warnStack bool
}

func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if env.Get("LOG_FORMAT", "json") == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level := parseLevel(opts.Level)
	base := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", opts.ServiceName).
		Logger()

	return &Logger{log: base, warnStack: opts.WarnStack || env.Bool("LOG_WARN_STACK", false)}
}

func parseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithContext stores the logger in the context for downstream handlers.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the context-carried logger or a silent fallback.
func FromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
			return l
		}
	}
	return &Logger{log: zerolog.Nop()}
}

func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{log: l.log.With().Interface(key, value).Logger(), warnStack: l.warnStack}
}

func (l *Logger) WithFields(fields map[string]any) *Logger {
	ctx := l.log.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{log: ctx.Logger(), warnStack: l.warnStack}
}

func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{log: l.log.With().Str("request_id", requestID).Logger(), warnStack: l.warnStack}
}

func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{log: l.log.With().Str("user_id", userID).Logger(), warnStack: l.warnStack}
}

func (l *Logger) Debug(ctx context.Context, msg string) {
	l.log.Debug().Msg(msg)
}

func (l *Logger) Info(ctx context.Context, msg string) {
	l.log.Info().Msg(msg)
}

func (l *Logger) Warn(ctx context.Context, msg string, err error) {
	evt := l.log.Warn()
	if err != nil {
		evt = evt.Err(err)
		if l.warnStack {
			evt = evt.Bytes("stack", debug.Stack())
		}
	}
	evt.Msg(msg)
}

func (l *Logger) Error(ctx context.Context, msg string, err error) {
	evt := l.log.Error()
	if err != nil {
		evt = evt.Err(err).Bytes("stack", debug.Stack())
	}
	evt.Msg(msg)
}

// Raw exposes the underlying zerolog logger for structured one-offs.
func (l *Logger) Raw() *zerolog.Logger {
	return &l.log
}
