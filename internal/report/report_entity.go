package report

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeEmployees  = "employees"
	TypeAttendance = "attendance"
	TypePayroll    = "payroll"
)

// Types lists the exportable reports in display order.
var Types = []string{TypeEmployees, TypeAttendance, TypePayroll}

type EmployeeRow struct {
	Name        string
	Email       string
	Position    string
	Department  *string
	Salary      decimal.Decimal
	JoiningDate *time.Time
}

type AttendanceRow struct {
	Name     string
	Date     time.Time
	CheckIn  *time.Time
	CheckOut *time.Time
	Status   string
}

type PayrollRow struct {
	Name        string
	MonthYear   time.Time
	BasicSalary decimal.Decimal
	NetSalary   decimal.Decimal
	Status      string
}
