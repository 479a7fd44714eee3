package chat

// Role identifies who produced a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// PrimingTurns is the number of synthetic turns seeded at session genesis.
const PrimingTurns = 2

// Turn is one append-only entry of a conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// UserTurn builds a user-role turn.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Text: text}
}

// ModelTurn builds a model-role turn.
func ModelTurn(text string) Turn {
	return Turn{Role: RoleModel, Text: text}
}
