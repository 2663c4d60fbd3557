package std

import (
	"fmt"
	"io"
	"os"

	"github.com/ezraisw/scenecall/logger"
)

type stdLogger struct {
	out   io.Writer
	err   io.Writer
	debug bool
}

// NewLogger prints to stdout and stderr. Debug lines are printed too.
func NewLogger() logger.Logger {
	return NewLoggerWithWriters(os.Stdout, os.Stderr, true)
}

func NewLoggerWithWriters(out, err io.Writer, debug bool) logger.Logger {
	return &stdLogger{
		out:   out,
		err:   err,
		debug: debug,
	}
}

func (l stdLogger) Info(args ...interface{}) {
	fmt.Fprintln(l.out, args...)
}

func (l stdLogger) Debug(args ...interface{}) {
	if !l.debug {
		return
	}
	fmt.Fprintln(l.out, args...)
}

func (l stdLogger) Error(args ...interface{}) {
	fmt.Fprintln(l.err, args...)
}
