// Package scope decides which rows a caller may see.
//
// Two axes exist and are never mixed. Department scoping covers employees,
// attendance, leave, payroll, performance reviews and reports: admin sees
// everything, HR sees its own department, an employee sees only itself.
// Ownership scoping covers documents: every caller sees what it owns and
// admin may additionally see everything.
package scope

import (
	"go-hrms/internal/identity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Kind string

const (
	KindEmployee    Kind = "employee"
	KindAttendance  Kind = "attendance"
	KindLeave       Kind = "leave"
	KindPayroll     Kind = "payroll"
	KindPerformance Kind = "performance"
	KindReport      Kind = "report"
	KindDocument    Kind = "document"
)

type Filter struct {
	All          bool
	None         bool
	DepartmentID *uuid.UUID
	EmployeeID   *uuid.UUID
	UserID       *uuid.UUID
}

// ForResource returns the row filter for kind and caller.
func ForResource(kind Kind, caller identity.Caller) Filter {
	if !caller.Authenticated() {
		return Filter{None: true}
	}
	if kind == KindDocument {
		return ownership(caller)
	}
	return departmental(caller)
}

func departmental(caller identity.Caller) Filter {
	switch caller.Role {
	case identity.RoleAdmin:
		return Filter{All: true}
	case identity.RoleHR:
		if caller.DepartmentID == nil {
			return Filter{None: true}
		}
		id := *caller.DepartmentID
		return Filter{DepartmentID: &id}
	case identity.RoleEmployee:
		if caller.EmployeeID == nil {
			return Filter{None: true}
		}
		id := *caller.EmployeeID
		return Filter{EmployeeID: &id}
	}
	return Filter{None: true}
}

func ownership(caller identity.Caller) Filter {
	if caller.IsAdmin() {
		return Filter{All: true}
	}
	id := caller.UserID
	return Filter{UserID: &id}
}

// Own narrows a document filter to the caller's own rows, even for admin.
func Own(caller identity.Caller) Filter {
	if !caller.Authenticated() {
		return Filter{None: true}
	}
	id := caller.UserID
	return Filter{UserID: &id}
}

// Employees applies a department filter to a query that has the employees
// table available under alias.
func (f Filter) Employees(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case f.None:
			return db.Where("1 = 0")
		case f.All:
			return db
		case f.DepartmentID != nil:
			return db.Where(alias+".department_id = ?", *f.DepartmentID)
		case f.EmployeeID != nil:
			return db.Where(alias+".id = ?", *f.EmployeeID)
		}
		return db.Where("1 = 0")
	}
}

// Owner applies an ownership filter on column.
func (f Filter) Owner(column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case f.None:
			return db.Where("1 = 0")
		case f.All:
			return db
		case f.UserID != nil:
			return db.Where(column+" = ?", *f.UserID)
		}
		return db.Where("1 = 0")
	}
}

// AllowsEmployee is the in-memory form of Employees for single-row checks.
func (f Filter) AllowsEmployee(employeeID uuid.UUID, departmentID *uuid.UUID) bool {
	switch {
	case f.None:
		return false
	case f.All:
		return true
	case f.DepartmentID != nil:
		return departmentID != nil && *departmentID == *f.DepartmentID
	case f.EmployeeID != nil:
		return *f.EmployeeID == employeeID
	}
	return false
}

// AllowsOwner is the in-memory form of Owner.
func (f Filter) AllowsOwner(userID uuid.UUID) bool {
	switch {
	case f.None:
		return false
	case f.All:
		return true
	case f.UserID != nil:
		return *f.UserID == userID
	}
	return false
}
