package repositories

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSearchSchema marks queries that failed because a listing table or its
// full-text index is missing. Such failures need a migration, not a retry.
var ErrSearchSchema = errors.New("listing search schema missing")

const (
	mysqlErrNoSuchTable      = 1146
	mysqlErrFulltextNotFound = 1191
	pgUndefinedTable         = "42P01"
	pgUndefinedColumn        = "42703"
)

func classifySQLError(err error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrNoSuchTable, mysqlErrFulltextNotFound:
			return fmt.Errorf("%w: %v", ErrSearchSchema, err)
		}
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable, pgUndefinedColumn:
			return fmt.Errorf("%w: %v", ErrSearchSchema, err)
		}
	}
	return err
}
