// Package apperr defines the failure kinds shared by the repository and HTTP layers.
package apperr

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindConnection    Kind = "connection"
	KindNotFound      Kind = "not_found"
	KindQuery         Kind = "query"
)

// Error carries a client-safe Message and an Internal cause that is only
// meant for server-side logs.
type Error struct {
	Kind     Kind
	Message  string
	Internal error
}

func (e *Error) Error() string {
	if e.Internal == nil {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind) + ": " + e.Message + ": " + e.Internal.Error()
}

func (e *Error) Unwrap() error { return e.Internal }

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Query(err error) *Error {
	return &Error{Kind: KindQuery, Message: "query failed", Internal: err}
}

func Connection(err error) *Error {
	return &Error{Kind: KindConnection, Message: "database unavailable", Internal: err}
}

func Configuration(msg string, err error) *Error {
	return &Error{Kind: KindConfiguration, Message: msg, Internal: err}
}

// KindOf reports the kind of the first *Error in err's chain, or "" when
// err was never classified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// Classify turns a raw driver error into a Connection or Query error.
// Errors that are already classified pass through untouched.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	if isConnErr(err) {
		return Connection(err)
	}
	return Query(err)
}

func isConnErr(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
