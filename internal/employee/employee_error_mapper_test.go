package employee

import (
	"errors"
	"net/http"
	"testing"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/shared/apperror"
	usererrors "go-ems/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, mapRepositoryError(nil))
	})

	t.Run("record not found", func(t *testing.T) {
		err := mapRepositoryError(gorm.ErrRecordNotFound)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("unique violation by constraint name", func(t *testing.T) {
		cases := map[string]error{
			"uq_employees_employee_id": employeeerrors.ErrEmployeeIDAlreadyExists,
			"uq_employees_user_id":     employeeerrors.ErrEmployeeRecordExists,
			"uq_users_email":           usererrors.ErrEmailAlreadyExists,
		}

		for constraint, want := range cases {
			got := mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: constraint})
			assert.ErrorIs(t, got, want, constraint)
		}
	})

	t.Run("unique violation by message text", func(t *testing.T) {
		// Drivers that do not surface a PgError still carry the
		// constraint name in the message.
		err := mapRepositoryError(errors.New(
			`ERROR: duplicate key value violates unique constraint "uq_users_email" (SQLSTATE 23505)`,
		))
		assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyExists)
	})

	t.Run("unknown failures collapse to internal", func(t *testing.T) {
		cause := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
		err := mapRepositoryError(cause)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInternalError, appErr.Code)
		assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
		assert.ErrorIs(t, err, cause)
	})
}
