package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Logger is the fabric-wide logger instance, configured once by Init
	// and scoped per-component/per-call via WithComponent, WithEndpoint,
	// and WithRequestID.
	Logger zerolog.Logger
)

// Level is the fabric's logging verbosity, independent of zerolog's own
// Level type so call sites never import zerolog just to configure Init.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

var zerologLevels = map[Level]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
}

// Config holds the process-wide logging setup: verbosity, wire format, and
// sink. JSONOutput should be true in production (log-shipped, machine
// parsed) and false for a developer running ipcfabricd at a terminal.
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// Init configures the package-level Logger from cfg. An unrecognized or
// zero Level defaults to InfoLevel; a nil Output defaults to os.Stdout.
func Init(cfg Config) {
	level, ok := zerologLevels[cfg.Level]
	if !ok {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// WithComponent creates a child logger with component field
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithEndpoint creates a child logger with endpoint field, scoping log
// lines to the remote target a transport.Client or circuit breaker is
// acting against.
func WithEndpoint(endpoint string) zerolog.Logger {
	return Logger.With().Str("endpoint", endpoint).Logger()
}

// WithRequestID creates a child logger with request_id field, carrying a
// types.RequestContext's RequestID through a call's log lines.
func WithRequestID(requestID string) zerolog.Logger {
	return Logger.With().Str("request_id", requestID).Logger()
}

// Info logs msg at info level on the package-level Logger.
func Info(msg string) {
	Logger.Info().Msg(msg)
}

func Debug(msg string) {
	Logger.Debug().Msg(msg)
}

func Warn(msg string) {
	Logger.Warn().Msg(msg)
}

func Error(msg string) {
	Logger.Error().Msg(msg)
}

func Errorf(format string, err error) {
	Logger.Error().Err(err).Msg(format)
}

func Fatal(msg string) {
	Logger.Fatal().Msg(msg)
}
