package dashboard

const StatusNotMarked = "Not Marked"

type AdminDashboard struct {
	TotalEmployees   int64 `json:"total_employees"`
	TotalHR          int64 `json:"total_hr"`
	TotalDepartments int64 `json:"total_departments"`
	TodayAttendance  int64 `json:"today_attendance"`
	PendingLeaves    int64 `json:"pending_leaves"`
}

type HRDashboard struct {
	DepartmentEmployees  int64                `json:"dept_employees"`
	TodayAttendance      int64                `json:"today_attendance"`
	PendingLeaves        int64                `json:"pending_leaves"`
	DepartmentAttendance []AttendanceResponse `json:"dept_attendance"`
}

type EmployeeDashboard struct {
	TodayStatus      string               `json:"today_status"`
	PresentDays      int64                `json:"present_days"`
	RecentAttendance []AttendanceResponse `json:"recent_attendance"`
}

type AttendanceResponse struct {
	Name     string  `json:"name,omitempty"`
	Date     string  `json:"date,omitempty"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Status   *string `json:"status"`
}
