package database

import (
	"errors"
	"strings"

	"biz-directory/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// uniqueFields maps constraint names declared in schema.sql to request fields.
var uniqueFields = map[string]string{
	"uq_users_email":            "email",
	"uq_users_username":         "username",
	"uq_categories_key":         "key",
	"uq_offers_business_name":   "name",
	"uq_offers_redemption_code": "redemption_code",
	"uq_businesses_user":        "business",
	"uq_customers_user":         "customer",
}

// WriteViolation converts a constraint violation raised by INSERT/UPDATE into
// a typed error, or returns nil when err is not one. entity names the
// referenced row for foreign key failures.
func WriteViolation(err error, entity string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return apperror.Conflict(constraintField(pgErr.ConstraintName))
	case codeForeignKeyViolation:
		return apperror.NotFound(entity, "")
	}
	return nil
}

// DeleteViolation converts a foreign key violation raised by DELETE into a
// dependency conflict, or returns nil.
func DeleteViolation(err error, entity string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return apperror.DependencyConflict(entity + " is still referenced")
	}
	return nil
}

func constraintField(name string) string {
	if field, ok := uniqueFields[name]; ok {
		return field
	}
	return strings.TrimPrefix(name, "uq_")
}
