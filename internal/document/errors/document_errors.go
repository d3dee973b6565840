package documenterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrNoFile = apperror.New(
		apperror.CodeInvalidInput,
		"No file part",
		http.StatusBadRequest,
	)
	ErrEmptyFilename = apperror.New(
		apperror.CodeInvalidInput,
		"No selected file",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File exceeds the upload size limit",
		http.StatusRequestEntityTooLarge,
	)
	ErrInvalidFilename = apperror.New(
		apperror.CodeInvalidInput,
		"File name is not allowed",
		http.StatusBadRequest,
	)
	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid document id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"document not found",
		http.StatusNotFound,
	)
	ErrFileMissing = apperror.New(
		apperror.CodeNotFound,
		"document file is missing",
		http.StatusNotFound,
	)
)
