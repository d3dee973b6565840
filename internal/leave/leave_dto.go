package leave

type ApplyRequest struct {
	LeaveType string `json:"leave_type" form:"leave_type" binding:"required,max=50"`
	StartDate string `json:"start_date" form:"start_date" binding:"required"`
	EndDate   string `json:"end_date" form:"end_date" binding:"required"`
	Reason    string `json:"reason" form:"reason"`
}

type ActionRequest struct {
	Action string `json:"action" form:"action" binding:"required"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Position     string  `json:"position,omitempty"`
	Department   string  `json:"department,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    int     `json:"total_days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedDate *string `json:"approved_date,omitempty"`
}

type LeaveListResponse struct {
	Status   string          `json:"status"`
	Requests []LeaveResponse `json:"requests"`
	Stats    Stats           `json:"stats"`
}
