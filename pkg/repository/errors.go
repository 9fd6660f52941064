package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE prefixes that mean the server cannot currently serve queries:
// connection exceptions and operator intervention (shutdown, crash recovery).
var unavailableStates = []string{"08", "57P"}

// ErrUnavailable reports that the database could not be reached.
var ErrUnavailable = errors.New("database unavailable")

// MapError translates driver errors for a read path. sql.ErrNoRows becomes
// notFound and connection-level failures are joined with ErrUnavailable so
// the cause survives. Anything else passes through unchanged.
func MapError(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return notFound
	case unavailable(err):
		return errors.Join(ErrUnavailable, err)
	default:
		return err
	}
}

func unavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	for _, prefix := range unavailableStates {
		if strings.HasPrefix(pgErr.Code, prefix) {
			return true
		}
	}
	return false
}
