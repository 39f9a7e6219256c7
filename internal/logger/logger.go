package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with a field-map API used across the service.
type Logger struct {
	zlog zerolog.Logger
}

// New creates a Logger for the given environment: colored console output at
// debug level in development, JSON at info level everywhere else.
func New(env string) *Logger {
	if env == "development" {
		return NewWithWriter(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}, zerolog.DebugLevel)
	}
	return NewWithWriter(os.Stdout, zerolog.InfoLevel)
}

// NewWithWriter creates a JSON Logger writing to w at the given level.
func NewWithWriter(w io.Writer, level zerolog.Level) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	zlog := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "homescout-api").
		Logger()

	return &Logger{zlog: zlog}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// SetLevel returns a copy of the logger filtered at level.
func (l *Logger) SetLevel(level zerolog.Level) *Logger {
	return &Logger{zlog: l.zlog.Level(level)}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	send(l.zlog.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	send(l.zlog.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	send(l.zlog.Warn(), msg, fields)
}

// Error logs msg at error level with err attached. err may be nil.
func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	send(l.zlog.Error().Err(err), msg, fields)
}

// Fatal logs msg and exits the process.
func (l *Logger) Fatal(msg string, err error, fields map[string]interface{}) {
	send(l.zlog.Fatal().Err(err), msg, fields)
}

// With creates a child logger carrying additional fields.
func (l *Logger) With(fields map[string]interface{}) *Logger {
	ctx := l.zlog.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, value)
	}
	return &Logger{zlog: ctx.Logger()}
}

// WithComponent creates a child logger tagged with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{zlog: l.zlog.With().Str("component", component).Logger()}
}

// WithRequestID creates a child logger with a request ID field.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{zlog: l.zlog.With().Str("request_id", requestID).Logger()}
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying l.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or fallback when there is none.
func FromContext(ctx context.Context, fallback *Logger) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
		return l
	}
	return fallback
}

// GetZerolog returns the underlying zerolog.Logger for advanced usage.
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zlog
}

func send(event *zerolog.Event, msg string, fields map[string]interface{}) {
	for key, value := range fields {
		event = event.Interface(key, value)
	}
	event.Msg(msg)
}
