package auth

type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=100"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	Role     string `json:"role" form:"role" binding:"required,oneof=employee hr"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AuthResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	EmployeeID   string `json:"employee_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	Position     string `json:"position,omitempty"`
}

type LoginResponse struct {
	User     AuthResponse `json:"user"`
	Redirect string       `json:"redirect"`
}
