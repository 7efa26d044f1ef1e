// Package logging provides the structured logger used by every component in
// the conversion pipeline: a component-prefixed wrapper whose call shape
// (Info/Warn/Error/Debug with trailing key/value pairs) stays stable
// regardless of the sink backing it.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps a zerolog.Logger with a fixed component prefix.
type Logger struct {
	prefix string
	zl     zerolog.Logger
}

var rootWriter io.Writer = os.Stdout

// ConfigureOutput points every subsequently-created Logger's underlying
// writer at a rotating log file in addition to stdout. Call once at
// startup when LOG_FILE is configured.
func ConfigureOutput(logFilePath string) {
	if logFilePath == "" {
		return
	}
	rootWriter = io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
	})
}

// NewLogger creates a logger scoped to a component prefix, e.g. "reader",
// "ocr", "fusion", "converter", "jobs", "api".
func NewLogger(prefix string) *Logger {
	zl := zerolog.New(rootWriter).With().Timestamp().Str("component", prefix).Logger()
	return &Logger{prefix: prefix, zl: zl}
}

func (l *Logger) Info(msg string, keysAndValues ...interface{})  { l.logWithKV(l.zl.Info(), msg, keysAndValues...) }
func (l *Logger) Warn(msg string, keysAndValues ...interface{})  { l.logWithKV(l.zl.Warn(), msg, keysAndValues...) }
func (l *Logger) Error(msg string, keysAndValues ...interface{}) { l.logWithKV(l.zl.Error(), msg, keysAndValues...) }
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) { l.logWithKV(l.zl.Debug(), msg, keysAndValues...) }

func (l *Logger) logWithKV(ev *zerolog.Event, msg string, keysAndValues ...interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, keysAndValues[i+1])
	}
	ev.Msg(msg)
}
