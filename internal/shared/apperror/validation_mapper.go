package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns "emergency_contact" into "Emergency Contact".
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts a binding error into an *AppError whose
// message names the first offending field. Details maps every offending
// field (by its json or form name) to "required" or "invalid".
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fields := make(map[string]string, len(errs))
		for _, fe := range errs {
			fields[fe.Field()] = fieldProblem(fe)
		}

		first := errs[0]
		field := formatFieldName(first.Field())
		if fieldProblem(first) == "required" {
			return RequiredField(field).WithDetails(fields)
		}
		return InvalidField(field).WithDetails(fields)
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}

func fieldProblem(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "required"
	}
	return "invalid"
}
