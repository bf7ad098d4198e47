package persistence

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"

	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

var (
	// Key (state_id)=(...) is not present in table "states".
	pgKeyDetail = regexp.MustCompile(`Key \(([a-z_]+)\)=`)
	// ... CONSTRAINT `fk_parties_state` FOREIGN KEY (`state_id`) REFERENCES ...
	mysqlFKColumn = regexp.MustCompile("FOREIGN KEY \\(`([a-z_]+)`\\)")
)

// translateError maps driver errors onto domain errors. A missing parent
// row becomes a *shared.ReferenceError naming the column when the driver
// reports it; deleting a row that is still referenced becomes ErrInUse.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			if strings.Contains(pgErr.Detail, "is still referenced") {
				return fmt.Errorf("%w: %s", shared.ErrInUse, pgErr.TableName)
			}
			return &shared.ReferenceError{Field: firstGroup(pgKeyDetail, pgErr.Detail), Cause: err}
		case pgUniqueViolation:
			return shared.ErrAlreadyExists
		}
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlNoReferencedRow:
			return &shared.ReferenceError{Field: firstGroup(mysqlFKColumn, myErr.Message), Cause: err}
		case mysqlRowIsReferenced:
			return shared.ErrInUse
		case mysqlDuplicateEntry:
			return shared.ErrAlreadyExists
		}
		return err
	}

	// SQLite only reports "FOREIGN KEY constraint failed" without a column,
	// and the same text for inserts and deletes.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &shared.ReferenceError{Cause: err}
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return shared.ErrAlreadyExists
	}
	return err
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) == 2 {
		return m[1]
	}
	return ""
}
