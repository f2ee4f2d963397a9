package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes mapped below
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgTruncation          = "22001"
	pgBadTextRepr         = "22P02"
	pgSerialization       = "40001"
	pgDeadlock            = "40P01"
	pgLockNotAvailable    = "55P03"
	pgReadOnlyTx          = "25006"
	pgCannotConnectNow    = "57P03"
)

// PgError returns the *pgconn.PgError at the root of err
func PgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if stderrs.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsDuplicateKey reports a unique violation
func IsDuplicateKey(err error) bool {
	pe, ok := PgError(err)
	return ok && pe.Code == pgUniqueViolation
}

// DBErrorCode classifies a Postgres error; ok is false for non-pg errors
func DBErrorCode(err error) (ErrorCode, bool) {
	pe, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pe.Code {
	case pgUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgForeignKeyViolation, pgTruncation, pgBadTextRepr:
		return ErrorCodeInvalidArgument, true
	case pgNotNullViolation, pgCheckViolation:
		return ErrorCodeValidation, true
	case pgReadOnlyTx, pgCannotConnectNow:
		return ErrorCodeUnavailable, true
	default:
		return ErrorCodeDB, true
	}
}

// FromPG wraps a database error with its mapped code; nil stays nil
func FromPG(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	e := &Error{code: code, msg: msg, orig: err}
	if pe, ok := PgError(err); ok && strings.TrimSpace(pe.ColumnName) != "" {
		e.field = pe.ColumnName
	}
	return e
}

// IsRetryable reports transient database contention. Context cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pe, ok := PgError(err); ok {
		switch pe.Code {
		case pgSerialization, pgDeadlock, pgLockNotAvailable:
			return true
		}
		return false
	}
	s := strings.ToLower(Root(err).Error())
	for _, frag := range []string{
		"commit unexpectedly resulted in rollback",
		"deadlock detected",
		"could not serialize access",
		"canceling statement due to lock timeout",
		"terminating connection due to administrator command",
	} {
		if strings.Contains(s, frag) {
			return true
		}
	}
	return false
}
