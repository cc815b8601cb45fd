// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollgram/auth"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := versionCommand()
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "pollgram devel")
}

func TestUserCreateCommand(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "pollgram.db")
	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := userCreateCommand()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{"-d", dsn, "--token-salt", "cli-salt"}, args...))
		err := cmd.Execute()
		return strings.TrimSpace(out.String()), err
	}

	token, err := run("--username", "alice", "--superuser")
	require.NoError(t, err)
	userID, err := auth.ParseUserToken(token, "cli-salt")
	require.NoError(t, err)
	assert.NotEmpty(t, userID)

	_, err = run("--username", "alice")
	assert.Error(t, err, "duplicate usernames are rejected")

	_, err = run()
	assert.Error(t, err, "username is required")
}

func TestMigrateCommand(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "pollgram.db")
	cmd := migrateCommand()
	cmd.SetArgs([]string{"-d", dsn, "--token-salt", "s"})
	require.NoError(t, cmd.Execute())

	// Running it twice is harmless
	cmd = migrateCommand()
	cmd.SetArgs([]string{"-d", dsn, "--token-salt", "s"})
	require.NoError(t, cmd.Execute())
}
