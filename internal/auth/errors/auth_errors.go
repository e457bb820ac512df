package autherrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	// Missing email and wrong password are deliberately the same error
	// so callers cannot enumerate accounts.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials",
		http.StatusUnauthorized,
	)

	ErrAccountDeactivated = apperror.New(
		apperror.CodeUnauthorized,
		"Account is deactivated",
		http.StatusUnauthorized,
	)

	ErrMissingToken = apperror.New(
		apperror.CodeUnauthorized,
		"Access token required",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid or expired token",
		http.StatusUnauthorized,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"An internal error occurred",
		http.StatusInternalServerError,
	)
)
