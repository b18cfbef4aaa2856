// Copyright (c) 2026 Inkwell. All rights reserved.

// Package dberr bridges low-level PostgreSQL errors and application errors.
//
// It classifies pgx failures by SQLSTATE so callers can branch on the
// outcome: a missing row becomes NOT_FOUND, a unique-constraint violation
// becomes CONFLICT. Slug assignment depends on the latter — the store's
// unique index is the hard gate against concurrent writers claiming the
// same slug, and the service retries on [IsUniqueViolation].
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
)

// Wrap inspects a database error and converts it into a client-safe
// [apperr.AppError]. The resource name feeds the NOT_FOUND message.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	if IsUniqueViolation(err) {
		return apperr.Conflict(resource + " already exists")
	}

	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
