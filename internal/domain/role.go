package domain

// Roles carried in the user record and in session claims.
const (
	RoleAdmin      = "admin"
	RoleAccounting = "accounting"
	RoleMerchant   = "merchant"
	RoleMember     = "member"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleAccounting, RoleMerchant, RoleMember:
		return true
	}
	return false
}
