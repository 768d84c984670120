package auth

const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

const (
	ActionEmployeeCreate = "employee.create"
	ActionEmployeeUpdate = "employee.update"
	ActionEmployeeDelete = "employee.delete"
	ActionUserRead       = "user.read"
	ActionUserCreate     = "user.create"
	ActionUserUpdate     = "user.update"
	ActionUserDelete     = "user.delete"
	ActionMetricsRead    = "metrics.read"
)

var Roles = []string{RoleAdmin, RoleOperator}

var DefaultActions = []string{
	ActionEmployeeCreate,
	ActionEmployeeUpdate,
	ActionEmployeeDelete,
	ActionUserRead,
	ActionUserCreate,
	ActionUserUpdate,
	ActionUserDelete,
	ActionMetricsRead,
}

var RoleActions = map[string][]string{
	RoleAdmin: {
		ActionEmployeeCreate,
		ActionEmployeeUpdate,
		ActionEmployeeDelete,
		ActionUserRead,
		ActionUserCreate,
		ActionUserUpdate,
		ActionUserDelete,
		ActionMetricsRead,
	},
	RoleOperator: {
		ActionEmployeeCreate,
		ActionEmployeeUpdate,
	},
}

// UserContext is the authenticated actor attached to a request.
type UserContext struct {
	UserID string
	Email  string
	Role   string
}

func ValidRole(role string) bool {
	_, ok := RoleActions[role]
	return ok
}

// Can reports whether role may perform action.
func Can(role, action string) bool {
	for _, allowed := range RoleActions[role] {
		if allowed == action {
			return true
		}
	}
	return false
}
