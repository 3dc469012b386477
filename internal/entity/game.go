package entity

import (
	"fmt"
	"time"

	"github.com/twohearts/couplegames-backend/internal/apperror"
)

const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"

	TypeTicTacToe   = "tictactoe"
	TypeConnectFour = "connectfour"

	WinnerDraw = "draw"

	EmptyCell = ""
)

// TicTacToeBoard is a linear 3x3 board, indexed row-major.
type TicTacToeBoard [9]string

// ConnectFourBoard is a 6x7 grid; row 0 is the top, discs settle downward.
type ConnectFourBoard [6][7]string

// Game is the persisted document for one match. Exactly one document per
// game type may be in a non-finished status at any time.
type Game struct {
	ID        string            `bson:"_id" json:"id"`
	Type      string            `bson:"type" json:"type"`
	Status    string            `bson:"status" json:"status"`
	Players   []*Player         `bson:"players" json:"players"`
	Cells     *TicTacToeBoard   `bson:"cells,omitempty" json:"cells,omitempty"`
	Grid      *ConnectFourBoard `bson:"grid,omitempty" json:"grid,omitempty"`
	Turn      string            `bson:"turn" json:"currentTurn"`
	Winner    string            `bson:"winner,omitempty" json:"winner,omitempty"`
	Version   int64             `bson:"version" json:"version"`
	CreatedAt time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updated_at" json:"updatedAt"`
}

// Move is one player's intent: a cell for tictactoe or a column for
// connectfour. Symbol and Color are wire aliases for the same thing.
type Move struct {
	Position *int   `json:"position,omitempty"`
	Column   *int   `json:"column,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Color    string `json:"color,omitempty"`
}

// Mark returns the moving symbol regardless of which alias the client used.
func (that *Move) Mark() string {
	if that.Symbol != "" {
		return that.Symbol
	}
	return that.Color
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

// IsActive reports whether the game still accepts participants or moves.
func (that *Game) IsActive() bool {
	return that.IsWaiting() || that.IsPlaying()
}

// ConfirmPlayingState returns nil only when moves are currently legal.
func (that *Game) ConfirmPlayingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameNotActive
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsPlaying():
		return nil
	default:
		return fmt.Errorf("%w: unknown status %q", apperror.ErrGameNotActive, that.Status)
	}
}

// PlayerByRole returns the entry for the given role, or nil.
func (that *Game) PlayerByRole(role string) *Player {
	for _, player := range that.Players {
		if player.Role == role {
			return player
		}
	}
	return nil
}

// Touch bumps the version counter and the update timestamp. Every accepted
// mutation goes through here so snapshot receivers can discard stale ones.
func (that *Game) Touch() {
	that.Version++
	that.UpdatedAt = time.Now().UTC()
}
