// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/pollgram/cliparse"
	"github.com/danielhkuo/pollgram/db"
)

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
	}
	flags := cliparse.RegisterFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := flags.Load()
		if err != nil {
			return err
		}
		logger := commonRun()

		conn, err := db.Open(cfg)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer db.Close(conn)

		if err := db.CreateSchema(conn); err != nil {
			return fmt.Errorf("schema creation failed: %w", err)
		}
		logger.Info("Database schema ready", "type", cfg.DatabaseType)
		return nil
	}
	return cmd
}
