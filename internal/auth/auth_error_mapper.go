package auth

import (
	"errors"
	"strings"

	usererrors "go-ems/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapUserPersistError translates a users-table constraint violation
// into the taxonomy; two concurrent registrations racing past the
// pre-check land here.
func mapUserPersistError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_users_email" {
			return usererrors.ErrEmailAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_users_email") {
		return usererrors.ErrEmailAlreadyExists
	}

	return err
}
