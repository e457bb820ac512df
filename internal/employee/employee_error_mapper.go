package employee

import (
	"errors"
	"net/http"
	"strings"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/shared/apperror"
	usererrors "go-ems/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employees_employee_id":
				return employeeerrors.ErrEmployeeIDAlreadyExists
			case "uq_employees_user_id":
				return employeeerrors.ErrEmployeeRecordExists
			case "uq_users_email":
				return usererrors.ErrEmailAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		switch {
		case strings.Contains(errMsg, "uq_employees_employee_id"):
			return employeeerrors.ErrEmployeeIDAlreadyExists
		case strings.Contains(errMsg, "uq_employees_user_id"):
			return employeeerrors.ErrEmployeeRecordExists
		case strings.Contains(errMsg, "uq_users_email"):
			return usererrors.ErrEmailAlreadyExists
		}
	}

	// Anything else is a database fault the caller cannot act on.
	return apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, http.StatusInternalServerError)
}
