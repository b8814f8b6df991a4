package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

const FileName = "stickynotes.log"

type Options struct {
	Dir   string
	Debug bool
	// Console overrides the debug console destination; defaults to stdout.
	Console io.Writer
}

// New builds the application logger: a rotating plain-text file, plus a
// coloured console in debug mode. The returned closer flushes the file.
func New(opts Options) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, FileName),
		MaxSize:    10,
		MaxAge:     3,
		MaxBackups: 3,
		LocalTime:  true,
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(file, &slog.HandlerOptions{Level: level, AddSource: opts.Debug}),
	}

	if opts.Debug {
		console := opts.Console
		if console == nil {
			console = os.Stdout
		}
		handlers = append(handlers, tint.NewHandler(console, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		}))
	}

	return slog.New(slogmulti.Fanout(handlers...)), file
}
