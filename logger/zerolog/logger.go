package zerolog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ezraisw/scenecall/logger"
	"github.com/rs/zerolog"
)

type zerologLogger struct {
	log zerolog.Logger
}

// NewLogger writes human-readable lines to stderr, tagged with app.
func NewLogger(app string, level zerolog.Level) logger.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return NewLoggerWithWriter(output, app, level)
}

func NewLoggerWithWriter(w io.Writer, app string, level zerolog.Level) logger.Logger {
	return &zerologLogger{
		log: zerolog.New(w).Level(level).With().Timestamp().Str("app", app).Logger(),
	}
}

// Wrap adapts an already configured zerolog.Logger.
func Wrap(log zerolog.Logger) logger.Logger {
	return &zerologLogger{log: log}
}

func (l zerologLogger) Info(args ...any) {
	emit(l.log.Info(), args)
}

func (l zerologLogger) Debug(args ...any) {
	emit(l.log.Debug(), args)
}

func (l zerologLogger) Error(args ...any) {
	emit(l.log.Error(), args)
}

// emit uses the first argument as the message, a leading error as the error
// field, and keeps the rest under "args".
func emit(e *zerolog.Event, args []any) {
	if e == nil {
		return
	}
	if len(args) == 0 {
		e.Send()
		return
	}

	head, rest := args[0], args[1:]
	if err, ok := head.(error); ok {
		e = e.Err(err)
		head = "error"
	}
	if len(rest) > 0 {
		e = e.Interface("args", rest)
	}
	e.Msg(fmt.Sprint(head))
}
