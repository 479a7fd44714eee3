package chat

import "time"

// Session is a persisted, persona-primed conversation.
type Session struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agentId"`
	Turns     []Turn    `json:"turns"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Primed reports whether the session already carries the persona priming pair.
func (s Session) Primed() bool {
	return len(s.Turns) >= PrimingTurns
}

// Visible returns the turns exchanged after the priming pair.
func (s Session) Visible() []Turn {
	if !s.Primed() {
		return nil
	}
	visible := make([]Turn, len(s.Turns)-PrimingTurns)
	copy(visible, s.Turns[PrimingTurns:])
	return visible
}

// Clone returns a deep copy so callers can append without aliasing stored turns.
func (s Session) Clone() Session {
	cloned := s
	cloned.Turns = append([]Turn(nil), s.Turns...)
	return cloned
}
