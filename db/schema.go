// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/danielhkuo/pollgram/models"
)

// CreateSchema creates or updates all tables needed for the application.
// Safe to call multiple times.
func CreateSchema(conn *gorm.DB) error {
	for _, table := range models.AllTables() {
		slog.Debug("migrating table", "model", fmt.Sprintf("%T", table))
		if err := conn.AutoMigrate(table); err != nil {
			return fmt.Errorf("failed to create schema for %T: %w", table, err)
		}
	}
	return nil
}
