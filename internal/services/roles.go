package services

import (
	"sort"

	"github.com/yashodhanketkar/citenote/internal/types"
)

const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// RoleValidator applies the self-service role rules.
type RoleValidator struct {
	allowed map[string]struct{}
}

func NewRoleValidator(allowed []string) *RoleValidator {
	v := &RoleValidator{allowed: map[string]struct{}{RoleGuest: {}}}
	for _, role := range allowed {
		if role != "" && role != RoleAdmin {
			v.allowed[role] = struct{}{}
		}
	}
	return v
}

// Validate returns the role to store. Admin cannot be self-assigned;
// anything outside the allow-list becomes guest.
func (v *RoleValidator) Validate(role string) (string, error) {
	if role == RoleAdmin {
		return "", types.InvalidRole()
	}
	if _, ok := v.allowed[role]; ok {
		return role, nil
	}
	return RoleGuest, nil
}

// Allowed returns the assignable roles, sorted.
func (v *RoleValidator) Allowed() []string {
	roles := make([]string, 0, len(v.allowed))
	for role := range v.allowed {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
