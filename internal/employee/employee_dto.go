package employee

type CreateEmployeeRequest struct {
	Name             string `json:"name" form:"name" binding:"required,max=100"`
	Email            string `json:"email" form:"email" binding:"required,email"`
	Phone            string `json:"phone" form:"phone" binding:"max=20"`
	DepartmentID     string `json:"department_id" form:"department_id" binding:"omitempty,uuid"`
	Position         string `json:"position" form:"position"`
	Salary           string `json:"salary" form:"salary"`
	JoiningDate      string `json:"date_of_joining" form:"date_of_joining"`
	EmergencyContact string `json:"emergency_contact" form:"emergency_contact"`
	Address          string `json:"address" form:"address"`
}

type UpdateEmployeeRequest struct {
	Name         string `json:"name" form:"name" binding:"required,max=100"`
	Phone        string `json:"phone" form:"phone" binding:"max=20"`
	DepartmentID string `json:"department_id" form:"department_id" binding:"required,uuid"`
	Position     string `json:"position" form:"position"`
	Salary       string `json:"salary" form:"salary" binding:"required"`
	Address      string `json:"address" form:"address"`
}

type CreateHRManagerRequest struct {
	Name         string `json:"name" form:"name" binding:"required,max=100"`
	Email        string `json:"email" form:"email" binding:"required,email"`
	Phone        string `json:"phone" form:"phone" binding:"max=20"`
	DepartmentID string `json:"department_id" form:"department_id" binding:"omitempty,uuid"`
	Address      string `json:"address" form:"address"`
}

// ContactRequest is what HR may change on a department employee.
type ContactRequest struct {
	Phone   string `json:"phone" form:"phone" binding:"required,max=20"`
	Address string `json:"address" form:"address" binding:"required"`
}

type ProfileRequest struct {
	Phone            string `json:"phone" form:"phone" binding:"required,max=20"`
	Address          string `json:"address" form:"address" binding:"required"`
	EmergencyContact string `json:"emergency_contact" form:"emergency_contact"`
}

// SalaryBatchRequest maps employee id to the new amount.
type SalaryBatchRequest struct {
	Salaries map[string]string `json:"salaries"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	UserID           *string `json:"user_id,omitempty"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	DepartmentID     *string `json:"department_id,omitempty"`
	DepartmentName   string  `json:"department_name"`
	Position         string  `json:"position"`
	Salary           string  `json:"salary"`
	JoiningDate      string  `json:"joining_date,omitempty"`
	EmergencyContact string  `json:"emergency_contact"`
	Address          string  `json:"address"`
	Role             string  `json:"role"`
}

type EmployeeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SalaryBatchResponse struct {
	Updated int `json:"updated"`
}
