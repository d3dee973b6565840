package reporterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var ErrUnknownReportType = apperror.New(
	apperror.CodeInvalidInput,
	"report type must be one of employees, attendance, payroll",
	http.StatusBadRequest,
)
