// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/danielhkuo/pollgram/cliparse"
)

// Open connects to the configured database and installs the tracing plugin.
func Open(cfg cliparse.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	}

	var (
		conn *gorm.DB
		err  error
	)
	switch cfg.DatabaseType {
	case cliparse.DatabasePostgres:
		sqlDB, openErr := sql.Open("postgres", cfg.DatabaseURL)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", openErr)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
		conn, err = gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
	case cliparse.DatabaseSQLite:
		conn, err = gorm.Open(sqlite.Open(cfg.DatabaseURL), gormCfg)
		if err == nil {
			// sqlite allows a single writer; serialize through one connection
			var sqlDB *sql.DB
			if sqlDB, err = conn.DB(); err == nil {
				sqlDB.SetMaxOpenConns(1)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DatabaseType, err)
	}

	if err := conn.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, fmt.Errorf("failed to install tracing plugin: %w", err)
	}
	return conn, nil
}

// Ping verifies the underlying connection is alive.
func Ping(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the underlying connection pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
