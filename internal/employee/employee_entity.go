package employee

import (
	"time"

	"go-hrms/internal/identity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee is the HR record behind every employee and HR manager. Admin
// accounts have no Employee row.
type Employee struct {
	ID               uuid.UUID       `gorm:"type:char(36);primaryKey"`
	UserID           *uuid.UUID      `gorm:"type:char(36);uniqueIndex:idx_employees_user_id"`
	Name             string          `gorm:"type:varchar(100);not null"`
	Email            string          `gorm:"type:varchar(150);not null"`
	Phone            string          `gorm:"type:varchar(20)"`
	DepartmentID     *uuid.UUID      `gorm:"type:char(36);index:idx_employees_department_id"`
	Position         string          `gorm:"type:varchar(100)"`
	Salary           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	JoiningDate      time.Time       `gorm:"type:date"`
	EmergencyContact string          `gorm:"type:varchar(100)"`
	Address          string          `gorm:"type:text"`
	Role             identity.Role   `gorm:"type:varchar(20);not null;default:employee;index:idx_employees_role"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeRow is an Employee joined with its department name.
type EmployeeRow struct {
	Employee
	DepartmentName string
}
