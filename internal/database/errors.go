package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// Driver-specific codes for unique-constraint violations.
const (
	pqUniqueViolationCode    = "23505"
	mysqlDuplicateEntryCode  = 1062
)

// IsUniqueViolation reports whether err was caused by a unique-constraint
// violation, for either PostgreSQL or MySQL. Repositories use this to map
// constraint failures to the domain conflict error instead of leaking
// driver errors to callers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolationCode
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntryCode
	}

	return false
}
