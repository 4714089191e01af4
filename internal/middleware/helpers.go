// internal/middleware/helpers.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"fieldserve-backend/internal/pkg/policy"
)

const (
	ctxEmployeeID = "employee_id"
	ctxFullName   = "full_name"
	ctxRole       = "role"
)

// GetEmployeeID gets the authenticated employee's id from context.
func GetEmployeeID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxEmployeeID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// MustGetEmployeeID gets the employee id from context or panics. Only
// valid on routes behind the gate.
func MustGetEmployeeID(c *gin.Context) int64 {
	id, ok := GetEmployeeID(c)
	if !ok {
		panic("employee_id not found in context")
	}
	return id
}

// GetRole gets the authenticated employee's role from context.
func GetRole(c *gin.Context) (policy.Role, bool) {
	v, exists := c.Get(ctxRole)
	if !exists {
		return "", false
	}
	role, ok := v.(policy.Role)
	return role, ok
}

// IsAdmin checks whether the request carries an admin-grade role.
func IsAdmin(c *gin.Context) bool {
	role, ok := GetRole(c)
	if !ok {
		return false
	}
	return role == policy.RoleAdmin || role == policy.RoleSuperAdmin
}
