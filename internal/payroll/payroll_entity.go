package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusPaid      = "paid"
)

// Payroll is one employee-month. MonthYear is always the first day of the
// month and (employee_id, month_year) is unique.
type Payroll struct {
	ID          uuid.UUID       `gorm:"column:id;type:char(36);primaryKey"`
	EmployeeID  uuid.UUID       `gorm:"column:employee_id;type:char(36);not null;uniqueIndex:idx_payroll_employee_month,priority:1"`
	MonthYear   time.Time       `gorm:"column:month_year;type:date;not null;uniqueIndex:idx_payroll_employee_month,priority:2;index:idx_payroll_month"`
	BasicSalary decimal.Decimal `gorm:"column:basic_salary;type:decimal(15,2);not null;default:0"`
	NetSalary   decimal.Decimal `gorm:"column:net_salary;type:decimal(15,2);not null;default:0"`
	Status      string          `gorm:"column:status;type:varchar(20);not null;default:pending"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Payroll) TableName() string {
	return "payroll"
}

// PayrollRow is a slip joined with its employee.
type PayrollRow struct {
	Payroll
	Name         string
	Position     string
	Department   string
	DepartmentID *uuid.UUID
}

// SalarySource is an employee's current salary, the input to generation.
type SalarySource struct {
	EmployeeID uuid.UUID
	Salary     decimal.Decimal
}
