package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusLeave   Status = "leave"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave:
		return true
	}
	return false
}

// Attendance is one employee-day. (employee_id, date) is unique.
type Attendance struct {
	ID         uuid.UUID  `gorm:"column:id;type:char(36);primaryKey"`
	EmployeeID uuid.UUID  `gorm:"column:employee_id;type:char(36);not null;uniqueIndex:idx_attendance_employee_date,priority:1"`
	Date       time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:idx_attendance_employee_date,priority:2;index:idx_attendance_date"`
	CheckIn    *time.Time `gorm:"column:check_in"`
	CheckOut   *time.Time `gorm:"column:check_out"`
	Status     Status     `gorm:"column:status;type:varchar(20);not null;default:present"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// DailyRow is an employee with its attendance for one date, if any.
type DailyRow struct {
	EmployeeID uuid.UUID
	Name       string
	Position   string
	Department string
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     *string
}

type EmployeeRef struct {
	ID       uuid.UUID
	Name     string
	Position string
}
