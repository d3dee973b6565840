package performance

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type PerformanceReview struct {
	ID                 uuid.UUID `gorm:"column:id;type:char(36);primaryKey"`
	EmployeeID         uuid.UUID `gorm:"column:employee_id;type:char(36);not null;index:idx_performance_reviews_employee"`
	ReviewerID         uuid.UUID `gorm:"column:reviewer_id;type:char(36);not null"`
	ReviewDate         time.Time `gorm:"column:review_date;type:date;not null"`
	Rating             int       `gorm:"column:rating;not null;check:chk_performance_reviews_rating,rating BETWEEN 1 AND 5"`
	Comments           string    `gorm:"column:comments;type:text"`
	PromotionSuggested bool      `gorm:"column:promotion_suggested;not null;default:false"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PerformanceReview) TableName() string {
	return "performance_reviews"
}

// ReviewRow is a review joined with the names shown in listings.
type ReviewRow struct {
	PerformanceReview
	EmployeeName   string
	DepartmentName string
	ReviewerName   string
}

type EmployeeOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
