package db

import (
	"database/sql"
	"strings"
	"testing"
)

func New(dsn string) (*sql.DB, error) {
	dbConn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	return dbConn, nil
}

func IsDuplicateEntryErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func RollbackAfterTest(t *testing.T, tx *sql.Tx) {
	t.Cleanup(func() {
		err := tx.Rollback()
		if err != nil {
			panic(err)
		}
	})
}
