package rbac

import "go-hrms/internal/identity"

// Resources guarded by the authorization middleware.
const (
	ResDashboard    = "dashboard"
	ResEmployee     = "employee"
	ResHRManager    = "hr_manager"
	ResDepartment   = "department"
	ResSalary       = "salary"
	ResAttendance   = "attendance"
	ResLeave        = "leave"
	ResPayroll      = "payroll"
	ResDocument     = "document"
	ResPerformance  = "performance"
	ResNotification = "notification"
	ResAudit        = "audit"
	ResReport       = "report"
	ResProfile      = "profile"
	ResAccount      = "account"
)

// ActAdmin, ActHR and ActEmployee guard the per-role views of a resource
// (/admin/..., /hr/..., /employee/...). Each is granted to its role only.
const (
	ActAdmin    = "admin"
	ActHR       = "hr"
	ActEmployee = "employee"

	ActRead          = "read"
	ActReadAll       = "read_all"
	ActReadOwn       = "read_own"
	ActManage        = "manage"
	ActUpdate        = "update"
	ActUpdateContact = "update_contact"
	ActCreate        = "create"
	ActSelf          = "self"
	ActManual        = "manual"
	ActApply         = "apply"
	ActGenerate      = "generate"
	ActExport        = "export"
	ActChangePass    = "change_password"
)

type Permission struct {
	Resource string
	Action   string
}

// authenticated is granted to every signed-in role.
var authenticated = []Permission{
	{ResProfile, ActRead},
	{ResProfile, ActUpdate},
	{ResAccount, ActRead},
	{ResAccount, ActChangePass},
	{ResAttendance, ActSelf},
	{ResLeave, ActApply},
	{ResLeave, ActReadOwn},
	{ResPayroll, ActReadOwn},
	{ResDocument, ActReadOwn},
	{ResDocument, ActCreate},
	{ResDocument, ActManage},
	{ResPerformance, ActReadOwn},
	{ResNotification, ActRead},
}

var rolePermissions = map[identity.Role][]Permission{
	identity.RoleAdmin: {
		{ResDashboard, ActAdmin},
		{ResEmployee, ActRead},
		{ResEmployee, ActManage},
		{ResHRManager, ActManage},
		{ResDepartment, ActManage},
		{ResSalary, ActManage},
		{ResAttendance, ActAdmin},
		{ResLeave, ActAdmin},
		{ResPayroll, ActAdmin},
		{ResPayroll, ActGenerate},
		{ResDocument, ActReadAll},
		{ResPerformance, ActReadAll},
		{ResPerformance, ActCreate},
		{ResAudit, ActRead},
		{ResReport, ActAdmin},
		{ResReport, ActExport},
	},
	identity.RoleHR: {
		{ResDashboard, ActHR},
		{ResEmployee, ActRead},
		{ResEmployee, ActUpdateContact},
		{ResAttendance, ActHR},
		{ResAttendance, ActManual},
		{ResLeave, ActHR},
		{ResPayroll, ActHR},
		{ResPerformance, ActReadAll},
		{ResPerformance, ActCreate},
		{ResReport, ActHR},
		{ResReport, ActExport},
	},
	identity.RoleEmployee: {
		{ResDashboard, ActEmployee},
	},
}

// DefaultPolicy returns every (role, resource, action) row.
func DefaultPolicy() [][]string {
	var rows [][]string
	for _, role := range []identity.Role{identity.RoleAdmin, identity.RoleHR, identity.RoleEmployee} {
		perms := append(append([]Permission{}, authenticated...), rolePermissions[role]...)
		for _, p := range perms {
			rows = append(rows, []string{role.String(), p.Resource, p.Action})
		}
	}
	return rows
}
