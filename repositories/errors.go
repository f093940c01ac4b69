package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")

	ErrDuplicate = errors.New("duplicate record")

	// ErrStoreTimeout covers statement timeouts, lock wait timeouts and
	// expired contexts.
	ErrStoreTimeout = errors.New("store timeout")

	// ErrSerialization is returned when the store aborted the transaction
	// because of a concurrent writer (deadlock, serialization failure).
	ErrSerialization = errors.New("concurrent update conflict")
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// translate maps gorm and driver errors onto the package sentinels. Unknown
// errors are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrStoreTimeout), errors.Is(err, ErrSerialization):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrStoreTimeout, err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		case mysqlLockWaitTimeout:
			return fmt.Errorf("%w: %w", ErrStoreTimeout, err)
		case mysqlDeadlock:
			return fmt.Errorf("%w: %w", ErrSerialization, err)
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		case "55P03", "57014":
			return fmt.Errorf("%w: %w", ErrStoreTimeout, err)
		case "40001", "40P01":
			return fmt.Errorf("%w: %w", ErrSerialization, err)
		}
	}

	return err
}

// IsTransient reports whether a read that failed with err may succeed when
// issued again.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrStoreTimeout) ||
		errors.Is(err, ErrSerialization) ||
		errors.Is(err, driver.ErrBadConn)
}
