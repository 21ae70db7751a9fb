package domain

import "time"

// TurnRole represents the author of a turn
type TurnRole string

const (
	RoleSystem    TurnRole = "system"
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// Turn represents one recorded exchange unit in a session
type Turn struct {
	Role      TurnRole   `json:"role"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Valid reports whether the turn carries both a role and content.
// Turns failing this check are excluded from completion requests and
// from turn-based triggers.
func (t Turn) Valid() bool {
	return t.Role != "" && t.Content != ""
}

// Conversational reports whether the turn is part of the dialogue proper
// (as opposed to system preambles or metadata records).
func (t Turn) Conversational() bool {
	return t.Valid() && (t.Role == RoleUser || t.Role == RoleAssistant)
}

// FilterValid returns only the turns carrying both role and content
func FilterValid(turns []Turn) []Turn {
	out := make([]Turn, 0, len(turns))
	for _, t := range turns {
		if t.Valid() {
			out = append(out, t)
		}
	}
	return out
}
