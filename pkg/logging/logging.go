package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ExitWithMSG prints msg and exits with code.
func ExitWithMSG(msg string, code int, log *zerolog.Logger) {
	fmt.Printf("%s\n", msg)
	os.Exit(code)
}

// SetLoggingWriters returns the writer the logger should use: a console
// writer when stderr is a terminal, plain output otherwise, plus a
// rotated log file when logFile is set.
func SetLoggingWriters(logFile string) io.Writer {
	var writers []io.Writer

	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		writers = append(writers, os.Stderr)
	}

	if logFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		})
	}

	return zerolog.MultiLevelWriter(writers...)
}
