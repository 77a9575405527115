// utils/permissions.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// Actions a capability check can ask about.
const (
	ActionView   = "view"
	ActionAdd    = "add"
	ActionChange = "change"
	ActionDelete = "delete"
)

// Authorizer answers "does this actor hold capability action on resourceKind".
// The default implementation is role-based; tests swap in their own.
type Authorizer interface {
	Authorize(role, action, resourceKind string) bool
}

// RoleAuthorizer grants capabilities by role:
//   - admin: everything
//   - finance: everything except deleting clients/offices/collaborators
//   - viewer: view only
type RoleAuthorizer struct{}

func (RoleAuthorizer) Authorize(role, action, resourceKind string) bool {
	switch role {
	case "admin":
		return true
	case "finance":
		if action != ActionDelete {
			return true
		}
		switch resourceKind {
		case "client", "office", "collaborator":
			return false
		}
		return true
	case "viewer":
		return action == ActionView
	}
	return false
}

// DefaultAuthorizer is used by controllers; replaceable for tests.
var DefaultAuthorizer Authorizer = RoleAuthorizer{}

// Authorize reads the role claim set by AuthMiddleware and runs the capability
// check. Must be called before any mutation.
func Authorize(c *gin.Context, action, resourceKind string) bool {
	role, _ := c.Get("role")
	roleStr, ok := role.(string)
	if !ok {
		return false
	}
	return DefaultAuthorizer.Authorize(roleStr, action, resourceKind)
}
