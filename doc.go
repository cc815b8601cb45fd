// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the pollgram command: the API server and its admin
subcommands.

Pollgram is a social polling service. Members create polls with ordered
choices, cast and retract votes, and see tallies according to each poll's
visibility policy and the creator's follow graph.

# Commands

	pollgram serve    Run the API server
	pollgram migrate  Create or update the schema and exit
	pollgram user create --username alice [--superuser] [--private]
	pollgram version

A .env file in the working directory is loaded before flags are parsed.
Use --debug (-D) on any command for debug logging.

# Configuration

Required settings:

  - TOKEN_SALT (--token-salt): Secret for bearer token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): sqlite DSN or PostgreSQL connection string
  - DATABASE_TYPE (-t): sqlite (default) or postgres

See package cliparse for the full list and precedence rules.

# Architecture

  - voting: Poll catalog, vote ledger, tallies and the visibility resolver
  - social: Users, follow requests and blocks
  - notify: Notifications fed from domain events
  - event: In-process event bus
  - store, store/sqlstore: Persistence interfaces and their gorm implementation
  - handlers, router, middleware: HTTP surface
  - models: Tables, requests and responses
  - auth: Bearer token generation and validation
  - metrics: Prometheus collectors
  - db: Connection setup and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
