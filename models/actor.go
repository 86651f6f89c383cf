package models

// Actor is the authenticated caller decoded from a bearer token.
type Actor struct {
	ID    int64
	Email string
	Role  Role
}

// IsStaff reports whether the caller holds a staff role.
func (a *Actor) IsStaff() bool {
	return a != nil && IsStaffRole(a.Role)
}

// IsCitizen reports whether the caller is a citizen account.
func (a *Actor) IsCitizen() bool {
	return a != nil && a.Role == RoleCitizen
}

// HasRole reports whether the caller holds any of roles.
func (a *Actor) HasRole(roles ...Role) bool {
	if a == nil {
		return false
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
