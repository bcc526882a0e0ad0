package auth

import "strings"

// Roles known to the system. Role is fixed at account creation; there is no
// role-change endpoint.
const (
	RoleNormal     = "normal"
	RoleStoreOwner = "store_owner"
	RoleAdmin      = "admin"
)

// NormalizeRole folds a caller-supplied role string into one of the three
// known roles. Recognized aliases map to store_owner; anything unrecognized
// folds to normal rather than erroring.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleStoreOwner, "owner", "storeowner":
		return RoleStoreOwner
	default:
		return RoleNormal
	}
}

// IsAuthorized is the single role policy for every gated route: admin is
// authorized everywhere, other roles only when listed in required. An empty
// required set admits any authenticated caller.
func IsAuthorized(role string, required []string) bool {
	if role == RoleAdmin {
		return true
	}
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}
