// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation and election persistence.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same SQL runs on SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq);
DriverName picks the driver for a configured database type.

# Tables

  - election_state: one row holding the JSON-encoded election.State
  - election_event: the notification log, one row per event, keyed by seq

# Store

	store := db.NewStore(conn)
	st, events, found, err := store.Load(ctx, controller)
	err = store.Save(ctx, controller, engine.Snapshot(), newEvents)

Save upserts the state and appends the new events in a single transaction,
so a crash never leaves state and events out of step. Load refuses a stored
election that was created for a different controller.
*/
package db
