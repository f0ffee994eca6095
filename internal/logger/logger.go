package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a thin key/value facade over zerolog.
type Logger struct {
	zl zerolog.Logger
}

var log = New(os.Stdout, zerolog.InfoLevel)

// New builds a JSON logger writing to w.
func New(w io.Writer, level zerolog.Level) Logger {
	return Logger{zl: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// Init configures the package logger. Development gets a console writer,
// everything else JSON on stdout.
func Init(environment, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if environment == "development" {
		log = Logger{zl: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(lvl).With().Timestamp().Logger()}
		return
	}
	log = New(os.Stdout, lvl)
}

func (l Logger) Info(msg string, kv ...interface{}) {
	withFields(l.zl.Info(), kv).Msg(msg)
}

func (l Logger) Error(msg string, kv ...interface{}) {
	withFields(l.zl.Error(), kv).Msg(msg)
}

func (l Logger) Warn(msg string, kv ...interface{}) {
	withFields(l.zl.Warn(), kv).Msg(msg)
}

func (l Logger) Debug(msg string, kv ...interface{}) {
	withFields(l.zl.Debug(), kv).Msg(msg)
}

// With returns a child logger carrying the given key/value pairs.
func (l Logger) With(kv ...interface{}) Logger {
	ctx := l.zl.With()
	for i := 0; i < len(kv); i += 2 {
		ctx = ctx.Interface(keyAt(kv, i), valueAt(kv, i))
	}
	return Logger{zl: ctx.Logger()}
}

func withFields(e *zerolog.Event, kv []interface{}) *zerolog.Event {
	for i := 0; i < len(kv); i += 2 {
		v := valueAt(kv, i)
		if err, ok := v.(error); ok {
			e = e.AnErr(keyAt(kv, i), err)
			continue
		}
		e = e.Interface(keyAt(kv, i), v)
	}
	return e
}

func keyAt(kv []interface{}, i int) string {
	if k, ok := kv[i].(string); ok {
		return k
	}
	return fmt.Sprint(kv[i])
}

func valueAt(kv []interface{}, i int) interface{} {
	if i+1 < len(kv) {
		return kv[i+1]
	}
	return "(MISSING)"
}

func Info(msg string, kv ...interface{}) {
	log.Info(msg, kv...)
}

func Infof(format string, v ...interface{}) {
	log.zl.Info().Msgf(format, v...)
}

func Warn(msg string, kv ...interface{}) {
	log.Warn(msg, kv...)
}

func Error(msg string, kv ...interface{}) {
	log.Error(msg, kv...)
}

func Errorf(format string, v ...interface{}) {
	log.zl.Error().Msgf(format, v...)
}

func Debug(msg string, kv ...interface{}) {
	log.Debug(msg, kv...)
}

func Debugf(format string, v ...interface{}) {
	log.zl.Debug().Msgf(format, v...)
}

func Fatalf(format string, v ...interface{}) {
	log.zl.Fatal().Msgf(format, v...)
}

// With returns a child of the package logger.
func With(kv ...interface{}) Logger {
	return log.With(kv...)
}
