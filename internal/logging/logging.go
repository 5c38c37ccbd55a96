// Package logging sets up the zerolog console logger shared by the song tools
// and adapts pipeline progress events to it.
package logging

import (
	"io"
	"os"

	"github.com/handiism/song-tools/internal/songs"
	"github.com/rs/zerolog"
)

// New creates a console logger on stderr for the named tool.
// verbose lowers the level from info to debug.
func New(tool string, verbose bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, tool, verbose)
}

// NewWithWriter is like New but writes to w.
func NewWithWriter(w io.Writer, tool string, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	_, isFile := w.(*os.File)
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    !isFile,
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("tool", tool).
		Logger()
}

// Progress returns a songs.ProgressFunc that writes events to logger.
//
// Verbose events are logged at debug level; success events at info level
// with status=ok.
func Progress(logger zerolog.Logger) songs.ProgressFunc {
	return func(event songs.ProgressEvent) {
		var e *zerolog.Event
		switch event.Level {
		case songs.LevelVerbose:
			e = logger.Debug()
		case songs.LevelWarning:
			e = logger.Warn()
		case songs.LevelError:
			e = logger.Error()
		case songs.LevelSuccess:
			e = logger.Info().Str("status", "ok")
		default:
			e = logger.Info()
		}
		e.Msg(event.Message)
	}
}
