package middleware

import (
	"denuncias/models"
	"net/http"
)

// RoleSet lists the roles allowed on a route. An empty set admits any authenticated caller.
type RoleSet []models.Role

// Roles builds a RoleSet.
func Roles(roles ...models.Role) RoleSet {
	return RoleSet(roles)
}

// Common sets shared by the route table.
var (
	AnyAuthenticated = Roles()
	AnyStaff         = Roles(models.StaffRoles...)
	CitizenOnly      = Roles(models.RoleCitizen)
)

// Allows reports whether actor may use a route guarded by s.
func (s RoleSet) Allows(actor *models.Actor) bool {
	if actor == nil {
		return false
	}
	if len(s) == 0 {
		return true
	}
	return actor.HasRole(s...)
}

// Authorize checks the caller placed in the context by RequireAuth against roles.
func Authorize(roles RoleSet, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromContext(r.Context())
		if actor == nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
			return
		}
		if !roles.Allows(actor) {
			respondWithError(w, http.StatusForbidden, "Forbidden", "You do not have permission to perform this action")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Protect is RequireAuth followed by Authorize.
func (m *AuthMiddleware) Protect(roles RoleSet, h http.HandlerFunc) http.Handler {
	return m.RequireAuth(Authorize(roles, h))
}
