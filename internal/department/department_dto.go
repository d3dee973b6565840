package department

type DepartmentRequest struct {
	Name        string  `json:"name" form:"name" binding:"required,max=100"`
	ManagerID   *string `json:"manager_id" form:"manager_id" binding:"omitempty,uuid"`
	Budget      string  `json:"budget" form:"budget"`
	Location    string  `json:"location" form:"location" binding:"max=100"`
	Description string  `json:"description" form:"description"`
}

type DepartmentResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ManagerID     *string `json:"manager_id,omitempty"`
	ManagerName   string  `json:"manager_name,omitempty"`
	Budget        string  `json:"budget"`
	Location      string  `json:"location"`
	Description   string  `json:"description"`
	EmployeeCount int64   `json:"employee_count"`
}

type DepartmentListResponse struct {
	Departments    []DepartmentResponse `json:"departments"`
	TotalEmployees int64                `json:"total_employees"`
}

type DepartmentOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
