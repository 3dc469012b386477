package websocket

import "encoding/json"

// client -> server actions
const (
	actionJoinGame  = "join-game"
	actionMakeMove  = "make-move"
	actionGameOver  = "game-over"
	actionJoinRPS   = "join-rps"
	actionRPSChoice = "rps-choice"
	actionRPSReset  = "rps-reset"
)

// server -> client actions
const (
	actionPlayerJoined    = "player-joined"
	actionMoveMade        = "move-made"
	actionGameEnded       = "game-ended"
	actionChoicesRevealed = "choices-revealed"
	actionRoundReset      = "round-reset"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newMessage(action string, payload any) *Message {
	return &Message{
		Action:  action,
		Payload: json.RawMessage(mustMarshal(payload)),
	}
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// GamePayload carries a game room id and, for move relays, the full
// authoritative snapshot the sender got back from the move endpoint. The
// server never interprets the snapshot, it only fans it out.
type GamePayload struct {
	GameID string          `json:"gameId"`
	Game   json.RawMessage `json:"game,omitempty"`
}

type RPSJoinPayload struct {
	Room string `json:"room"`
}

type RPSChoicePayload struct {
	Room   string `json:"room"`
	Choice string `json:"choice"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
