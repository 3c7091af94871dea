package gormdb

import (
	"errors"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"storefront/internal/domain"
)

const (
	pgUndefinedTable  = "42P01"
	pgUniqueViolation = "23505"

	mysqlNoSuchTable  = 1146
	mysqlDuplicateKey = 1062
)

// classify turns driver errors into the domain error types. Errors that are
// already domain errors pass through untouched.
func classify(err error, resource string, id any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.NotFoundError{Resource: resource, ID: id}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable:
			return &domain.SchemaNotInitializedError{Table: pgErr.TableName, Err: err}
		case pgUniqueViolation:
			return &domain.ConflictError{Message: resource + " already exists"}
		}
	}

	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlNoSuchTable:
			return &domain.SchemaNotInitializedError{Err: err}
		case mysqlDuplicateKey:
			return &domain.ConflictError{Message: resource + " already exists"}
		}
	}
	return err
}
