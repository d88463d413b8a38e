package access

import "github.com/google/uuid"

// Role is a principal's effective privilege level.
type Role string

// Roles in precedence order. A principal in several groups gets the highest
// one; group names double as role names.
const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// Principal is a snapshot of the authenticated caller's identity and raw
// group/flag memberships, taken by the session layer at request time.
// Resolution works on this snapshot alone and performs no I/O.
type Principal struct {
	ID            uuid.UUID
	Authenticated bool
	Superuser     bool
	Groups        []string
}

// ResolveRole derives the principal's effective role. An absent or
// unauthenticated principal has none. The superuser flag and the admin
// group both resolve to admin regardless of other memberships; otherwise
// instructor wins over student.
func ResolveRole(p *Principal) (Role, bool) {
	if p == nil || !p.Authenticated {
		return "", false
	}

	if p.Superuser || p.inGroup(RoleAdmin) {
		return RoleAdmin, true
	}
	if p.inGroup(RoleInstructor) {
		return RoleInstructor, true
	}
	if p.inGroup(RoleStudent) {
		return RoleStudent, true
	}
	return "", false
}

func (p *Principal) inGroup(role Role) bool {
	for _, g := range p.Groups {
		if g == string(role) {
			return true
		}
	}
	return false
}
