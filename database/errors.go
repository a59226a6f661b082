package database

import (
	"context"
	"errors"

	"github.com/godamri/helix-problem/http/response"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapError tags a pgx error with a response code so the problem pipeline
// can choose a status. Driver text is kept as the wrapped cause only; it is
// never promoted into a client-facing detail.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return response.Coded(response.ErrNotFound, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return response.Coded(response.ErrGatewayTimeout, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return response.Coded(response.ErrAlreadyExists, err)
		case "23503": // foreign_key_violation
			return response.Coded(response.ErrConflict, err)
		case "23502", "23514": // not_null_violation, check_violation
			return response.Coded(response.ErrValidation, err)
		case "40001": // serialization_failure
			return response.Coded(response.ErrVersionMismatch, err)
		case "57014": // query_canceled
			return response.Coded(response.ErrGatewayTimeout, err)
		}
	}

	return response.Coded(response.ErrSystem, err)
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
