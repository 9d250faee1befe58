// Package eventlog records every exchange call and its outcome as one
// human-readable line.
package eventlog

import (
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chilly266futon/futuresBot/internal/domain"
)

const redacted = "***"

var sensitiveKeys = map[string]struct{}{
	"signature":    {},
	"apikey":       {},
	"api_key":      {},
	"apisecret":    {},
	"api_secret":   {},
	"secret":       {},
	"x-mbx-apikey": {},
}

type Log struct {
	logger *zap.Logger
}

// New writes events through the sinks of logger. Events at Info and above
// are always written, whatever level logger was built with.
func New(logger *zap.Logger) *Log {
	pinned := logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return infoCore{Core: c}
	}))
	return &Log{logger: pinned.Named("events")}
}

// infoCore enables Info and above and hands entries straight to the wrapped
// core's Write, bypassing the wrapped core's own level.
type infoCore struct {
	zapcore.Core
}

func (c infoCore) Enabled(level zapcore.Level) bool {
	return level >= zapcore.InfoLevel
}

func (c infoCore) With(fields []zapcore.Field) zapcore.Core {
	return infoCore{Core: c.Core.With(fields)}
}

func (c infoCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Call is one attempted operation. Start one with Begin and finish it with
// Success or Failure.
type Call struct {
	log       *Log
	id        string
	operation string
	params    string
}

func (l *Log) Begin(operation string, params map[string]string) *Call {
	return &Call{
		log:       l,
		id:        uuid.NewString(),
		operation: operation,
		params:    FormatParams(params),
	}
}

// Params returns the redacted parameter text of the call.
func (c *Call) Params() string {
	return c.params
}

func (c *Call) Success(summary string) {
	c.log.logger.Info(c.operation+" succeeded",
		zap.String("call_id", c.id),
		zap.String("operation", c.operation),
		zap.String("params", c.params),
		zap.String("outcome", "success"),
		zap.String("result", summary),
	)
}

func (c *Call) Failure(err error) {
	report := domain.AsReport(err)

	level := zapcore.ErrorLevel
	if report.Kind == domain.ErrorKindValidation {
		level = zapcore.WarnLevel
	}

	fields := []zap.Field{
		zap.String("call_id", c.id),
		zap.String("operation", c.operation),
		zap.String("params", c.params),
		zap.String("outcome", "failure"),
		zap.String("kind", report.Kind.String()),
		zap.String("message", report.Message),
	}
	if report.Code != 0 {
		fields = append(fields, zap.Int("code", report.Code))
	}

	c.log.logger.Log(level, c.operation+" failed", fields...)
}

// FormatParams renders params as sorted key=value pairs with credentials
// and signatures masked.
func FormatParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	var b strings.Builder
	for i, key := range slices.Sorted(maps.Keys(params)) {
		if i > 0 {
			b.WriteByte(' ')
		}
		value := params[key]
		if IsSensitive(key) {
			value = redacted
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value)
	}
	return b.String()
}

func IsSensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}
