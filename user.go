// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/pollgram/auth"
	"github.com/danielhkuo/pollgram/cliparse"
	"github.com/danielhkuo/pollgram/db"
	"github.com/danielhkuo/pollgram/social"
	"github.com/danielhkuo/pollgram/store/sqlstore"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(userCreateCommand())
	return cmd
}

func userCreateCommand() *cobra.Command {
	var (
		username string
		opts     social.RegisterOptions
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user and print its bearer token",
	}
	flags := cliparse.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&username, "username", "", "username (required)")
	cmd.Flags().StringVar(&opts.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&opts.LastName, "last-name", "", "last name")
	cmd.Flags().BoolVar(&opts.Superuser, "superuser", false, "grant admin rights")
	cmd.Flags().BoolVar(&opts.Private, "private", false, "create a private account")
	_ = cmd.MarkFlagRequired("username")

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

		user, err := social.NewDirectory(sqlstore.New(conn), nil).Register(cmd.Context(), username, opts)
		if err != nil {
			return err
		}
		logger.Info("User created", "user_id", user.ID, "username", user.Username, "superuser", user.IsSuperuser)
		fmt.Fprintln(cmd.OutOrStdout(), auth.GenerateUserToken(user.ID, cfg.TokenSalt))
		return nil
	}
	return cmd
}
