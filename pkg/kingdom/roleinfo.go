package kingdom

// RegionRoleInfo is role-specific intelligence about a region.
// Different roles see different details about the same territory;
// higher priority rows are shown first.
type RegionRoleInfo struct {
	RegionID string `json:"region_id"`
	RoleID   string `json:"role_id"`

	Title       string `json:"title,omitempty"`
	Information string `json:"information"`
	Priority    int    `json:"priority"`
}
