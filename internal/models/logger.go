package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQueryThreshold is the duration after which a query is logged as warning.
const slowQueryThreshold = 200 * time.Millisecond

// logger writes gorm messages and traced statements to zerolog.
//
// level follows gorm's levels: Silent drops everything, Error keeps failed
// statements, Warn adds slow statements and Info adds every statement.
type logger struct {
	Logger zerolog.Logger
	level  gorm_logger.LogLevel
	slow   time.Duration
}

func newLogger(l zerolog.Logger) *logger {
	return &logger{
		Logger: l,
		level:  gorm_logger.Info,
		slow:   slowQueryThreshold,
	}
}

// LogMode returns a copy of the logger at the given level.
func (l *logger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	copied := *l
	copied.level = level
	return &copied
}

func (l *logger) Info(_ context.Context, s string, args ...interface{}) {
	if l.level >= gorm_logger.Info {
		l.Logger.Info().Msgf(s, args...)
	}
}

func (l *logger) Warn(_ context.Context, s string, args ...interface{}) {
	if l.level >= gorm_logger.Warn {
		l.Logger.Warn().Msgf(s, args...)
	}
}

func (l *logger) Error(_ context.Context, s string, args ...interface{}) {
	if l.level >= gorm_logger.Error {
		l.Logger.Error().Msgf(s, args...)
	}
}

// Trace logs a finished statement.
//
// Missing records are expected in lookups and are not errors here, the
// query callbacks turn them into NotFound errors.
func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gorm_logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var event *zerolog.Event
	var msg string
	switch {
	case err != nil && !errors.Is(err, gorm_logger.ErrRecordNotFound) && !errors.Is(err, ErrResourceNotFound):
		event, msg = l.Logger.Error().Err(err), "[GORM] query error"
	case l.slow > 0 && elapsed > l.slow && l.level >= gorm_logger.Warn:
		event, msg = l.Logger.Warn().Dur("threshold", l.slow), "[GORM] slow query"
	case l.level >= gorm_logger.Info:
		event, msg = l.Logger.Debug(), "[GORM] query"
	default:
		return
	}

	sql, rows := fc()
	event = event.Str("sql", sql).Dur("duration", elapsed)

	// gorm reports -1 when the statement has no row count
	if rows >= 0 {
		event = event.Int64("rows", rows)
	}

	event.Msg(msg)
}
