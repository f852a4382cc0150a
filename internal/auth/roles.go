// Package auth holds role predicates over a user's role collection.
package auth

const (
	RoleSuperUser = "superuser"
	RoleCataloger = "cataloger"
)

// hasRole is an exact match; role names are not normalized.
func hasRole(roles []string, want string) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}

func IsSuperUser(roles []string) bool { return hasRole(roles, RoleSuperUser) }

func IsCataloger(roles []string) bool { return hasRole(roles, RoleCataloger) }

// CanAssign reports whether roles grant the assign view (selection
// checkboxes, the assign drawer and the highlight trigger).
func CanAssign(roles []string) bool {
	return IsSuperUser(roles) || IsCataloger(roles)
}
