package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	ActionApprove = "approve"
	ActionReject  = "reject"
)

// LeaveRequest moves from pending to exactly one of approved or rejected.
type LeaveRequest struct {
	ID           uuid.UUID  `gorm:"column:id;type:char(36);primaryKey"`
	EmployeeID   uuid.UUID  `gorm:"column:employee_id;type:char(36);not null;index:idx_leave_requests_employee"`
	LeaveType    string     `gorm:"column:leave_type;type:varchar(50);not null"`
	StartDate    time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate      time.Time  `gorm:"column:end_date;type:date;not null"`
	Reason       string     `gorm:"column:reason;type:text"`
	Status       string     `gorm:"column:status;type:varchar(20);not null;default:pending;index:idx_leave_requests_status"`
	ApprovedBy   *uuid.UUID `gorm:"column:approved_by;type:char(36)"`
	ApprovedDate *time.Time `gorm:"column:approved_date"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// TotalDays counts both ends of the range.
func (l LeaveRequest) TotalDays() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

// LeaveRow is a request joined with its employee.
type LeaveRow struct {
	LeaveRequest
	EmployeeName string
	Position     string
	Department   string
	DepartmentID *uuid.UUID
	UserID       *uuid.UUID
}

type Stats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
