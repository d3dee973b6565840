// Package identity holds the authenticated caller that every scoped or
// authorized service call receives explicitly.
package identity

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Caller is an immutable snapshot of the session taken at login. The zero
// value represents an anonymous request.
type Caller struct {
	UserID       uuid.UUID
	Name         string
	Email        string
	Role         Role
	EmployeeID   *uuid.UUID
	DepartmentID *uuid.UUID
	Position     string
}

func (c Caller) Authenticated() bool {
	return c.UserID != uuid.Nil && c.Role.Valid()
}

func (c Caller) IsAdmin() bool    { return c.Role == RoleAdmin }
func (c Caller) IsHR() bool       { return c.Role == RoleHR }
func (c Caller) IsEmployee() bool { return c.Role == RoleEmployee }

// InDepartment reports whether the caller belongs to departmentID.
func (c Caller) InDepartment(departmentID *uuid.UUID) bool {
	if c.DepartmentID == nil || departmentID == nil {
		return false
	}
	return *c.DepartmentID == *departmentID
}

// IsEmployeeSelf reports whether employeeID is the caller's own row.
func (c Caller) IsEmployeeSelf(employeeID uuid.UUID) bool {
	return c.EmployeeID != nil && *c.EmployeeID == employeeID
}
