package db

import (
	"database/sql"
	"fmt"
)

// sqliteSchema mirrors the postgres schema. Decimals are stored as text
// so no precision is lost round-tripping through the driver.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS asset (
	asset_id       TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL,
	symbol         TEXT NOT NULL,
	name           TEXT NOT NULL,
	asset_type     TEXT NOT NULL,
	current_price  TEXT NOT NULL,
	previous_close TEXT NOT NULL,
	quantity       TEXT NOT NULL,
	average_cost   TEXT NOT NULL,
	created_at     TIMESTAMP NOT NULL,
	updated_at     TIMESTAMP NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS asset_user_symbol ON asset (user_id, UPPER(symbol));

CREATE TABLE IF NOT EXISTS "transaction" (
	transaction_id TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL,
	asset_id       TEXT NOT NULL REFERENCES asset (asset_id) ON DELETE CASCADE,
	type           TEXT NOT NULL CHECK (type IN ('buy', 'sell')),
	quantity       TEXT NOT NULL,
	price_per_unit TEXT NOT NULL,
	date           TIMESTAMP NOT NULL,
	notes          TEXT,
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS transaction_asset ON "transaction" (asset_id);
`

// NewSQLite opens (and if needed creates) the local store at path and
// bootstraps the schema.
func NewSQLite(path string) (*sql.DB, error) {
	dbConn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	_, err = dbConn.Exec(sqliteSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap sqlite schema: %w", err)
	}

	return dbConn, nil
}
