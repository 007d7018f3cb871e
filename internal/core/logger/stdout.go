package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type StdoutLogger struct {
	logger zerolog.Logger
}

func initStdoutLogger(opts Options) (Logger, error) {
	var w io.Writer = os.Stdout
	if opts.Console {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return newStdoutLogger(w, opts)
}

func newStdoutLogger(w io.Writer, opts Options) (*StdoutLogger, error) {
	level := zerolog.DebugLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	zl := zerolog.New(w).
		Level(level).
		With().
		Str("service", opts.ServiceName).
		Logger()

	return &StdoutLogger{logger: zl}, nil
}

func (l *StdoutLogger) Log(_ context.Context, entry LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	var event *zerolog.Event
	switch entry.Level {
	case LogLevelDebug:
		event = l.logger.Debug()
	case LogLevelInfo:
		event = l.logger.Info()
	case LogLevelWarn:
		event = l.logger.Warn()
	case LogLevelError:
		event = l.logger.Error()
	case LogLevelFatal:
		// zerolog exits the process once the message is written
		event = l.logger.Fatal()
	default:
		event = l.logger.Info()
	}

	event = event.Time(zerolog.TimestampFieldName, entry.Timestamp)
	if entry.Error != nil {
		event = event.Err(entry.Error)
	}
	if len(entry.Attributes) > 0 {
		event = event.Fields(map[string]any(entry.Attributes))
	}
	event.Msg(entry.Message)
}

func (l *StdoutLogger) Shutdown(context.Context) error {
	return nil
}
