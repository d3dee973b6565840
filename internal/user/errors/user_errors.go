package usererrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Email already registered!",
		http.StatusConflict,
	)

	ErrPasswordMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"New passwords do not match!",
		http.StatusBadRequest,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect!",
		http.StatusBadRequest,
	)

	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password!",
		http.StatusUnauthorized,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid role",
		http.StatusBadRequest,
	)
)
