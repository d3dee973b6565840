package employee

import (
	"errors"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/shared/dberr"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if dberr.IsUniqueViolation(err) {
		return employeeerrors.ErrEmailAlreadyRegistered
	}
	if dberr.IsForeignKeyViolation(err) {
		return employeeerrors.ErrInvalidDepartmentID
	}
	return err
}
