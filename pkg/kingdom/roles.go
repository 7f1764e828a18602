package kingdom

// Council roles. Every player action and note is scoped to one of these.
const (
	RoleRegent    = "regent"
	RoleTreasurer = "treasurer"
	RoleGeneral   = "general"
	RoleSpymaster = "spymaster"
	RoleHistorian = "historian"
)

// KnownRole reports whether roleID is one of the council roles.
func KnownRole(roleID string) bool {
	switch roleID {
	case RoleRegent, RoleTreasurer, RoleGeneral, RoleSpymaster, RoleHistorian:
		return true
	}
	return false
}
