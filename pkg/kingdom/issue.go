package kingdom

// Issue statuses. An issue transitions active -> resolved exactly
// once; archived is applied by an external curation step.
const (
	IssueStatusPending  = "pending"
	IssueStatusActive   = "active"
	IssueStatusResolved = "resolved"
	IssueStatusArchived = "archived"
)

// Resolution is one of the choices players may submit for an issue.
type Resolution struct {
	ChoiceID    string `json:"choice_id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Issue is a question put before the council. Definitions are static
// seed content; per-game status lives on the game document.
type Issue struct {
	IssueID     string       `json:"issue_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        string       `json:"type,omitempty"` // e.g. "Militarism", "Economy"
	Resolutions []Resolution `json:"resolutions,omitempty"`
}

// HasResolution reports whether choiceID is one of the issue's
// declared choices. Issues without declared choices accept free-form
// resolutions.
func (i *Issue) HasResolution(choiceID string) bool {
	if len(i.Resolutions) == 0 {
		return true
	}
	for _, r := range i.Resolutions {
		if r.ChoiceID == choiceID {
			return true
		}
	}
	return false
}
