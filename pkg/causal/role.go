package causal

import "strings"

// Role is the declared causal role of a variable. Roles are advisory
// metadata supplied by the scenario author, not derived from structure.
type Role string

// Known variable roles.
const (
	RoleTreatment  Role = "treatment"
	RoleOutcome    Role = "outcome"
	RoleConfounder Role = "confounder"
	RoleMediator   Role = "mediator"
	RoleCollider   Role = "collider"
	RoleInstrument Role = "instrument"
	RoleOther      Role = "other"
)

var knownRoles = map[Role]bool{
	RoleTreatment:  true,
	RoleOutcome:    true,
	RoleConfounder: true,
	RoleMediator:   true,
	RoleCollider:   true,
	RoleInstrument: true,
	RoleOther:      true,
}

// ParseRole normalizes s and returns the matching Role.
// Unknown or empty strings map to RoleOther with ok=false.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if knownRoles[r] {
		return r, true
	}
	return RoleOther, false
}
