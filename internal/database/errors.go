package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeExclusionViolation  = "23P01"
)

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || hasPgCode(err, codeUniqueViolation) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || hasPgCode(err, codeForeignKeyViolation) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// IsExclusionViolation reports a violated EXCLUDE constraint (PostgreSQL only).
func IsExclusionViolation(err error) bool {
	return hasPgCode(err, codeExclusionViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
