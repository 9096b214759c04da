package storage

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Postgres stores values in a single key/value table. Each value is a JSON
// blob, the same way the original browser build kept serialized entries in
// localStorage.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (ps *Postgres) IsDown() bool {
	if _, err := ps.db.Exec("SELECT 1"); err != nil {
		return true
	}
	return false
}

func (ps *Postgres) Get(key string) (string, bool, error) {
	rows, err := ps.db.Query(selectValueSQL, key)
	if err != nil {
		return "", false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (ps *Postgres) Set(key, value string) error {
	_, err := ps.db.Exec(upsertValueSQL, key, value)
	return err
}

func (ps *Postgres) Delete(key string) error {
	_, err := ps.db.Exec(deleteValueSQL, key)
	return err
}

const (
	selectValueSQL = `SELECT value FROM store WHERE key = $1 LIMIT 1`
	upsertValueSQL = `
    WITH existing AS (
      UPDATE store SET value = $2
      WHERE key = $1
      RETURNING key
    )
    INSERT INTO store(key, value)
    SELECT $1, $2
    WHERE NOT EXISTS (SELECT 1 FROM existing)
  `
	deleteValueSQL = `DELETE FROM store WHERE key = $1`
)
