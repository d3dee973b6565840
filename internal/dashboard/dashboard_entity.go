package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRow is an employee joined with one attendance row, or with
// nothing when the employee has not been marked.
type AttendanceRow struct {
	EmployeeID uuid.UUID
	Name       string
	Date       *time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     *string
}
