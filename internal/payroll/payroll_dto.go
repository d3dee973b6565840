package payroll

type GenerateRequest struct {
	Month string `json:"month" form:"month" binding:"required"`
}

type PayrollResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name,omitempty"`
	Position    string `json:"position,omitempty"`
	Department  string `json:"department,omitempty"`
	Month       string `json:"month"`
	BasicSalary string `json:"basic_salary"`
	NetSalary   string `json:"net_salary"`
	Status      string `json:"status"`
}

type MonthResponse struct {
	Month string            `json:"month"`
	Slips []PayrollResponse `json:"slips"`
}

type GenerateResponse struct {
	Month   string `json:"month"`
	Created int64  `json:"created"`
	Skipped int64  `json:"skipped"`
}

// Payslip is a rendered PDF ready to be served.
type Payslip struct {
	Filename string
	Content  []byte
}
