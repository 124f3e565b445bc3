package constants

import "fmt"

// Roles del panel de facturación.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

var (
	AllRoles  = []string{RoleAdmin, RoleStaff}
	AdminOnly = []string{RoleAdmin}
)

const errOnlyAdminsCanAccess = "Solo un admin puede acceder a %s."

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(errOnlyAdminsCanAccess, feature)
}

// IsValidRole valida el role antes de persistirlo.
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
