package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/TaiyoMatsuda/board-app/internal/config"
)

const slowQueryThreshold = 200 * time.Millisecond

// Open connects with the driver named in conf.
func Open(conf *config.DatabaseConfig, environment string) (*gorm.DB, error) {
	switch conf.Driver {
	case "mysql":
		return OpenMySQL(conf.DSN, environment)
	default:
		return OpenPostgres(conf, environment)
	}
}

func OpenPostgres(conf *config.DatabaseConfig, environment string) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		conf.Host, conf.User, conf.Password, conf.DB, conf.Port, conf.SSLMode,
	)

	return OpenPostgresWithURL(dsn, environment)
}

func OpenPostgresWithURL(dsn string, environment string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), newGormConfig(environment))
	if err != nil {
		return nil, fmt.Errorf("gorm.Open(postgres) -> %w", err)
	}

	return db, nil
}

func OpenMySQL(dsn string, environment string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database.dsn is required for mysql")
	}

	db, err := gorm.Open(mysql.Open(dsn), newGormConfig(environment))
	if err != nil {
		return nil, fmt.Errorf("gorm.Open(mysql) -> %w", err)
	}

	return db, nil
}

func newGormConfig(environment string) *gorm.Config {
	level := gormlogger.Warn
	switch environment {
	case "development":
		level = gormlogger.Info
	case "test":
		level = gormlogger.Silent
	}

	return &gorm.Config{
		Logger: &zapGormLogger{level: level},
	}
}

// zapGormLogger forwards gorm's logs to zap.L().
type zapGormLogger struct {
	level gormlogger.LogLevel
}

func (l *zapGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &zapGormLogger{level: level}
}

func (l *zapGormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		zap.L().Sugar().Infof(msg, args...)
	}
}

func (l *zapGormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		zap.L().Sugar().Warnf(msg, args...)
	}
}

func (l *zapGormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		zap.L().Sugar().Errorf(msg, args...)
	}
}

func (l *zapGormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		zap.L().Error("gorm query failed",
			zap.Error(err), zap.Duration("elapsed", elapsed), zap.String("sql", sql), zap.Int64("rows", rows))
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		zap.L().Warn("gorm slow query",
			zap.Duration("elapsed", elapsed), zap.String("sql", sql), zap.Int64("rows", rows))
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		zap.L().Debug("gorm query",
			zap.Duration("elapsed", elapsed), zap.String("sql", sql), zap.Int64("rows", rows))
	}
}
