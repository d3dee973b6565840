package performance

type AddReviewRequest struct {
	EmployeeID         string `form:"employee_id" binding:"required"`
	ReviewDate         string `form:"review_date" binding:"required"`
	Rating             int    `form:"rating" binding:"required"`
	Comments           string `form:"comments"`
	PromotionSuggested bool   `form:"promotion_suggested"`
}

type ReviewResponse struct {
	ID                 string `json:"id"`
	EmployeeID         string `json:"employee_id"`
	EmployeeName       string `json:"employee_name,omitempty"`
	DepartmentName     string `json:"department_name,omitempty"`
	ReviewerID         string `json:"reviewer_id"`
	ReviewerName       string `json:"reviewer_name,omitempty"`
	ReviewDate         string `json:"review_date"`
	Rating             int    `json:"rating"`
	Comments           string `json:"comments"`
	PromotionSuggested bool   `json:"promotion_suggested"`
}

type ReviewListResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	Employees []EmployeeOption `json:"employees,omitempty"`
}
