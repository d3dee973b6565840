package department

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Department struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey"`
	Name        string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_departments_name"`
	ManagerID   *uuid.UUID      `gorm:"type:char(36)"`
	Budget      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Location    string          `gorm:"type:varchar(100)"`
	Description string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

func (Department) TableName() string {
	return "departments"
}

// DepartmentWithCount carries the number of employees assigned.
type DepartmentWithCount struct {
	Department
	ManagerName   string
	EmployeeCount int64
}
