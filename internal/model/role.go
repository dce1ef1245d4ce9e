package model

// Role is the closed set of platform roles carried in the auth token.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// ParseRole maps an arbitrary claim string onto the closed enumeration.
// Unknown values degrade to student, the least privileged role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleInstructor:
		return RoleInstructor
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleStudent
	}
}

// CanBypassEnrollment reports whether the role may stream any lesson without
// an enrollment check. Course creators get the same bypass, but that is an
// ownership fact, not a role capability.
func (r Role) CanBypassEnrollment() bool {
	return r == RoleAdmin
}
