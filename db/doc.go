// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the gorm connection and creates the schema.

# Connecting

Open picks the dialector from Config.DatabaseType:

  - sqlite: github.com/glebarez/sqlite, one open connection
  - postgres: a lib/pq *sql.DB wrapped by gorm.io/driver/postgres

Both get the OpenTelemetry tracing plugin.

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close(conn)

# Schema Creation

CreateSchema runs AutoMigrate over models.AllTables and is safe to call
repeatedly.

# Relationships

	user 1──* poll
	poll 1──* choice
	poll 1──* vote            (unique poll_id, user_id)
	vote 1──* vote_choice *──1 choice
	user *──* user            (follow_relationships, blocks)
	user 1──* notification

Deletes cascade in application code (store.PollStore.Delete) inside a
transaction, so behavior does not depend on sqlite foreign key pragmas.
*/
package db
