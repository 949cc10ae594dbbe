package repository

import (
	stderrors "errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"catalog/internal/errors"
)

// MySQL errno for foreign key violations on delete (1451) and insert (1452).
const (
	mysqlErrRowIsReferenced  = 1451
	mysqlErrNoReferencedRow3 = 1452
)

// translateError maps driver-level failures to domain errors so that nothing
// above the repository layer sees a raw storage error.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrResourceNotFound
	}
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrRowIsReferenced, mysqlErrNoReferencedRow3:
			return errors.ErrDatabaseIntegrity
		}
	}
	return err
}
