package repositories

import (
	"context"
	"database/sql"

	intconfig "travelmap/internal/config"
)

// DBTX is satisfied by *sql.DB and *sql.Tx so a repository can run inside
// the transaction of a multi-row write.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryRow(query string, args ...any) *sql.Row
}

func conn(db *sql.DB, tx *sql.Tx) DBTX {
	if tx != nil {
		return tx
	}
	if db != nil {
		return db
	}
	return intconfig.DB
}

// expectOne turns a write that matched no row into sql.ErrNoRows. The DSN
// sets clientFoundRows so an update to identical values still counts.
func expectOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
