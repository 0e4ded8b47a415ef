package dao

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const mysqlDuplicateEntry = 1062

// isUniqueViolation reports whether err is the database rejecting a write
// on the named unique constraint, for either supported driver.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation &&
			(pgErr.ConstraintName == constraint || strings.Contains(pgErr.Message, constraint))
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry && strings.Contains(myErr.Message, constraint)
	}

	return false
}
