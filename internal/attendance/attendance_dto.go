package attendance

type MarkRequest struct {
	Action string `json:"action" form:"action" binding:"required,oneof=check_in check_out"`
}

type ManualRequest struct {
	EmployeeID string `json:"employee_id" form:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" form:"date" binding:"required"`
	CheckIn    string `json:"check_in" form:"check_in"`
	CheckOut   string `json:"check_out" form:"check_out"`
	Status     string `json:"status" form:"status" binding:"required,oneof=present absent half_day leave"`
}

type AttendanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     string  `json:"status"`
	TotalHours *int    `json:"total_hours,omitempty"`
}

// Outcome is the result of a self check-in or check-out. Warning is set when
// nothing was written.
type Outcome struct {
	Message string              `json:"message"`
	Warning bool                `json:"warning"`
	Record  *AttendanceResponse `json:"record,omitempty"`
}

type DailyEntry struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Department string  `json:"department,omitempty"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     *string `json:"status,omitempty"`
}

type DailyStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	HalfDay int `json:"half_day"`
	OnLeave int `json:"on_leave"`
}

type DailyReport struct {
	Date  string       `json:"date"`
	Rows  []DailyEntry `json:"rows"`
	Stats DailyStats   `json:"stats"`
}

type MonthlySummary struct {
	PresentDays   int `json:"present_days"`
	AbsentDays    int `json:"absent_days"`
	TotalHours    int `json:"total_hours"`
	OvertimeHours int `json:"overtime_hours"`
}

type MyAttendanceResponse struct {
	Today   *AttendanceResponse  `json:"today,omitempty"`
	History []AttendanceResponse `json:"history"`
	Summary MonthlySummary       `json:"monthly_summary"`
}

type EmployeeOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}
