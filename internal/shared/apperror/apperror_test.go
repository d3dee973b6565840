package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"go-hrms/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "already there", http.StatusConflict)

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeConflict, got.Code)
		assert.Equal(t, "already there", got.Message)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		base := apperror.New(apperror.CodeNotFound, "leave not found", http.StatusNotFound)
		err := fmt.Errorf("decide: %w", base)

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, "leave not found", got.Message)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "pq")
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeInternalError, "x", 500))

	cause := errors.New("disk full")
	err := apperror.Wrap(cause, apperror.CodeInternalError, "save failed", 500)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save failed: disk full", err.Error())
}

type profileInput struct {
	EmergencyContact string `json:"emergency_contact" validate:"required"`
	Phone            string `json:"phone" validate:"omitempty,max=3"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string { return fld.Tag.Get("json") })

	err := v.Struct(profileInput{})
	mapped := apperror.MapValidationError(err)

	var appErr *apperror.AppError
	assert.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, "Emergency Contact is required", appErr.Message)
	assert.Equal(t, map[string]string{"emergency_contact": "required"}, appErr.Details)

	err = v.Struct(profileInput{Phone: "12345"})
	mapped = apperror.MapValidationError(err)
	assert.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, "Emergency Contact is required", appErr.Message)
	assert.Equal(t, map[string]string{"emergency_contact": "required", "phone": "invalid"}, appErr.Details)
	assert.Equal(t, appErr.Details, apperror.ToHTTP(mapped).Details)

	err = v.Struct(profileInput{EmergencyContact: "x", Phone: "12345"})
	mapped = apperror.MapValidationError(err)
	assert.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, "Phone is invalid", appErr.Message)

	mapped = apperror.MapValidationError(errors.New("EOF"))
	assert.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Nil(t, appErr.Details)
}

func TestWithDetails(t *testing.T) {
	sentinel := apperror.New(apperror.CodeValidation, "bad salary", http.StatusBadRequest)

	got := sentinel.WithDetails(map[string]string{"salary_1": "invalid"})

	assert.Nil(t, sentinel.Details)
	assert.Equal(t, sentinel.Code, got.Code)
	assert.Equal(t, map[string]string{"salary_1": "invalid"}, apperror.ToHTTP(got).Details)
}
