package entity

const (
	RoleAdmin = "admin"
	RoleLover = "lover"
)

// Player is one side of a game. Role identifies the caller's identity class,
// Symbol is the mark the role places on the board.
type Player struct {
	Role   string `bson:"role" json:"role"`
	Symbol string `bson:"symbol" json:"symbol"`
}
