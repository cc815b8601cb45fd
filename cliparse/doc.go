// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line flags and layered configuration.

# Configuration

Commands register flags on their flag set and load the merged Config:

	flags := cliparse.RegisterFlags(cmd.Flags())
	cfg, err := flags.Load()

ParseFlags does both for a plain argument slice:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Precedence

Highest first:

 1. Command-line flags that were set explicitly
 2. Environment (POLLGRAM_ prefix, unprefixed names as fallback)
 3. YAML file given by --config or POLLGRAM_CONFIG
 4. Defaults (port 3318, sqlite file:pollgram.db)

# Config Fields

  - Port: Server listen port
  - DatabaseURL: sqlite DSN or PostgreSQL connection string
  - DatabaseType: "sqlite" or "postgres"
  - TokenSalt: Secret for bearer token HMAC (required)
  - Debug: Debug logging
  - ShutdownTimeout: Graceful shutdown budget
  - StrictChoiceOrders: Reject votes that name unknown choice orders
  - EventWorkers: Async event delivery workers

# CLI Flags

	-c, --config            YAML config file
	-p, --port              Server port
	-d, --database-url      Database URL
	-t, --database-type     sqlite or postgres
	--token-salt            Bearer token salt
	--shutdown-timeout      e.g. 10s
	--strict-choice-orders  Reject unknown orders
	--event-workers         Async workers

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, TOKEN_SALT, DEBUG,
	SHUTDOWN_TIMEOUT, STRICT_CHOICE_ORDERS, EVENT_WORKERS

Each may also be given with the POLLGRAM_ prefix, which wins.
*/
package cliparse
