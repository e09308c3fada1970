/*
Package logx wraps the global zerolog logger.

Development builds write colored console lines at Debug level; everything else writes JSON at Info
level to stdout. Components take a tagged child logger with Component, and one-off messages go
through the package-level Info, Warn, Error and Fatal helpers with key-value fields.
*/
package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the global logger for the given environment.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var (
		out   io.Writer = os.Stdout
		level           = zerolog.InfoLevel
	)
	if isDevelopment {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Caller().Logger()
}

// SetOutput redirects the global logger, keeping its level. Tests use it to capture or silence logs.
func SetOutput(w io.Writer) {
	log.Logger = log.Logger.Output(w)
}

// Logger returns the global logger.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// Component returns a child logger tagged with name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

func Info(msg string, fields ...any) {
	emit(Logger().Info(), msg, fields)
}

func Warn(msg string, fields ...any) {
	emit(Logger().Warn(), msg, fields)
}

// Error logs err with msg.
func Error(err error, msg string, fields ...any) {
	emit(Logger().Error().Err(err), msg, fields)
}

// Fatal logs err with msg and exits with status 1.
func Fatal(err error, msg string, fields ...any) {
	emit(Logger().Fatal().Err(err), msg, fields)
}

// emit writes e with fields as key-value pairs. An odd field count would make zerolog
// pair keys with the wrong values, so such fields are dropped and reported instead.
func emit(e *zerolog.Event, msg string, fields []any) {
	if len(fields)%2 != 0 {
		e.Int("dropped_fields", len(fields))
		fields = nil
	}

	e.Fields(fields).CallerSkipFrame(2).Msg(msg)
}
