// Package gorm routes gorm's logger through zerolog.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold marks queries logged as warnings.
const DefaultSlowThreshold = 200 * time.Millisecond

// Logger implements gorm's logger.Interface.
type Logger struct {
	level         gormlogger.LogLevel
	SlowThreshold time.Duration
	zl            *zerolog.Logger
}

// New returns a gorm logger writing to the global zerolog logger.
func New() *Logger {
	return &Logger{
		level:         gormlogger.Warn,
		SlowThreshold: DefaultSlowThreshold,
	}
}

// WithLogger uses zl instead of the global logger.
func (l *Logger) WithLogger(zl zerolog.Logger) *Logger {
	cp := *l
	cp.zl = &zl

	return &cp
}

func (l *Logger) logger() *zerolog.Logger {
	if l.zl != nil {
		return l.zl
	}

	return &log.Logger
}

// LogMode implements logger.Interface.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level

	return &cp
}

// Info implements logger.Interface.
func (l *Logger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger().Info().Str("component", "gorm").Msg(fmt.Sprintf(msg, args...))
	}
}

// Warn implements logger.Interface.
func (l *Logger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger().Warn().Str("component", "gorm").Msg(fmt.Sprintf(msg, args...))
	}
}

// Error implements logger.Interface.
func (l *Logger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger().Error().Str("component", "gorm").Msg(fmt.Sprintf(msg, args...))
	}
}

// Trace implements logger.Interface.
// Failed queries log at error, slow ones at warn, the rest at debug.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var ev *zerolog.Event

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		ev = l.logger().Error().Err(err)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.level >= gormlogger.Warn:
		ev = l.logger().Warn().Dur("threshold", l.SlowThreshold)
	case l.level >= gormlogger.Info:
		ev = l.logger().Debug()
	default:
		return
	}

	sql, rows := fc()

	ev.Str("component", "gorm").
		Dur("elapsed", elapsed).
		Int64("rows", rows).
		Str("sql", sql).
		Msg("query")
}
