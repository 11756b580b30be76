package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the MySQL error number for a unique-key violation.
const mysqlDuplicateEntry = 1062

// IsDuplicateEntry reports whether err is a unique-constraint violation.
// The services map these to invariant errors (duplicate like, duplicate
// membership, duplicate collaboration); racing writers are arbitrated by
// the store, the loser lands here.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
