/*
Package store persists comparison results.

# Schema Creation

CreateSchema initializes the table and its index:

	if err := store.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Drivers

Open accepts "sqlite" (modernc.org/sqlite, pure Go) and "postgres"
(github.com/lib/pq). Amounts are stored as TEXT decimal strings so that no
precision is lost in either backend. Each row carries summary columns for
listing plus the full result as a JSON payload.
*/
package store
