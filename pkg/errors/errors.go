package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	undefinedTable = "42P01"
)

// PublicMessage is the only failure detail ever shown to clients.
const PublicMessage = "Server Error"

// Kind classifies where a data-access failure originated.
type Kind int

const (
	// KindQuery is any statement failure not covered by a more specific kind.
	KindQuery Kind = iota
	// KindUnavailable means the database could not be reached.
	KindUnavailable
	// KindUndefinedTable means the queried relation does not exist.
	KindUndefinedTable
	// KindCanceled means the caller's context ended before the query finished.
	KindCanceled
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindUndefinedTable:
		return "undefined_table"
	case KindCanceled:
		return "canceled"
	default:
		return "query"
	}
}

// statusByKind maps every store error kind to the HTTP status sent to clients.
var statusByKind = map[Kind]int{
	KindQuery:          http.StatusInternalServerError,
	KindUnavailable:    http.StatusInternalServerError,
	KindUndefinedTable: http.StatusInternalServerError,
	KindCanceled:       http.StatusInternalServerError,
}

// StoreError is a classified data-access failure.
type StoreError struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap returns the wrapped error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *StoreError) HTTPStatus() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the client-visible body for this error
func (e *StoreError) PublicMessage() string {
	return PublicMessage
}

// Classify wraps err into a StoreError for operation op. A nil err stays nil
// and an existing StoreError is returned unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var se *StoreError
	if stderrors.As(err, &se) {
		return se
	}

	return &StoreError{Kind: kindOf(err), Op: op, Err: err}
}

func kindOf(err error) Kind {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		if pgErr.Code == undefinedTable {
			return KindUndefinedTable
		}
		return KindQuery
	}

	var connectErr *pgconn.ConnectError
	if stderrors.As(err, &connectErr) {
		return KindUnavailable
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return KindUnavailable
	}

	return KindQuery
}

// KindOf reports the kind of a classified error. Unclassified errors are KindQuery.
func KindOf(err error) Kind {
	var se *StoreError
	if stderrors.As(err, &se) {
		return se.Kind
	}
	return KindQuery
}

// HTTPStatusOf returns the HTTP status for any error returned by the data layer.
func HTTPStatusOf(err error) int {
	var se *StoreError
	if stderrors.As(err, &se) {
		return se.HTTPStatus()
	}
	return http.StatusInternalServerError
}
