// Package log provides structured logging for SIPP on top of zerolog.
//
// Loggers accept alternating key/value pairs, mirroring the field keys
// defined in this package so that log lines stay uniform across packages:
//
//	logger := log.GetLoggerWithName("linear").With(log.ComponentKey, "linear")
//	logger.Info("Training started", log.SamplesKey, 120, log.FeaturesKey, 4)
//
// SetupLogger configures the global level; SetOutput redirects output
// (the terminal UI sends logs to a file so they do not corrupt the screen).
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Common field keys.
const (
	ComponentKey  = "component"
	ModelNameKey  = "model"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	SamplesKey    = "samples"
	FeaturesKey   = "features"
	PredsKey      = "predictions"
	DurationMsKey = "duration_ms"
	DistrictKey   = "district"
	PathKey       = "path"
	ScoreKey      = "score"
	TierKey       = "tier"
)

// Operation and phase values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationLoad    = "load"
	OperationSave    = "save"
	OperationRender  = "render"

	PhaseTraining  = "training"
	PhaseInference = "inference"
	PhasePersist   = "persistence"
)

// Logger is the logging interface used throughout SIPP.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

var (
	mu   sync.RWMutex
	root = newRoot(os.Stderr, zerolog.InfoLevel)
)

func newRoot(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetupLogger sets the global log level ("debug", "info", "warn", "error",
// "disabled"). Unknown levels fall back to info.
func SetupLogger(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	mu.Lock()
	root = root.Level(lvl)
	mu.Unlock()
}

// SetOutput redirects the global logger to w, keeping the current level.
func SetOutput(w io.Writer) {
	mu.Lock()
	root = newRoot(w, root.GetLevel())
	mu.Unlock()
}

// GetLogger returns a Logger bound to the current global configuration.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &zerologLogger{l: root}
}

// GetLoggerWithName returns a Logger tagged with name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With("logger", name)
}

// LogError logs err at error level with optional fields.
func LogError(err error, msg string, fields ...interface{}) {
	mu.RLock()
	l := root
	mu.RUnlock()
	l.Error().Err(err).Fields(normalize(fields)).Msg(msg)
}

type zerologLogger struct {
	l zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, fields ...interface{}) {
	z.l.Debug().Fields(normalize(fields)).Msg(msg)
}

func (z *zerologLogger) Info(msg string, fields ...interface{}) {
	z.l.Info().Fields(normalize(fields)).Msg(msg)
}

func (z *zerologLogger) Warn(msg string, fields ...interface{}) {
	z.l.Warn().Fields(normalize(fields)).Msg(msg)
}

// Error logs at error level. A leading error value is attached as the
// "error" field.
func (z *zerologLogger) Error(msg string, fields ...interface{}) {
	ev := z.l.Error()
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			ev = ev.Err(err)
			fields = fields[1:]
		}
	}
	ev.Fields(normalize(fields)).Msg(msg)
}

func (z *zerologLogger) With(fields ...interface{}) Logger {
	return &zerologLogger{l: z.l.With().Fields(normalize(fields)).Logger()}
}

// normalize drops a dangling key so zerolog never sees an odd-length list.
func normalize(fields []interface{}) []interface{} {
	if len(fields)%2 == 1 {
		return fields[:len(fields)-1]
	}
	return fields
}
