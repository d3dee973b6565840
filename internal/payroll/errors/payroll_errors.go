package payrollerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidPayrollID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll id",
		http.StatusBadRequest,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll slip not found",
		http.StatusNotFound,
	)
	ErrPayslipRenderFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to render payslip",
		http.StatusInternalServerError,
	)
)
