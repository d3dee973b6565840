package autherrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password!",
		http.StatusUnauthorized,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"Email already registered!",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be employee or hr",
		http.StatusBadRequest,
	)
	ErrNoDepartment = apperror.New(
		apperror.CodeInvalidState,
		"No department available for registration",
		http.StatusConflict,
	)
	ErrSessionFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"Could not start session, please try again",
		http.StatusServiceUnavailable,
	)
)
