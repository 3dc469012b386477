// Package rules holds the pure board logic for every supported game type.
// Nothing here touches persistence or the network; a Rules implementation
// either rejects a move outright or applies it fully.
package rules

import (
	"fmt"

	"github.com/twohearts/couplegames-backend/internal/apperror"
	"github.com/twohearts/couplegames-backend/internal/entity"
)

// Rules is the per-game-type capability: board setup, positional symbol
// assignment, and the validate-mutate-detect step for a single move.
type Rules interface {
	Type() string

	// FirstSymbol is assigned to the creating player and moves first.
	FirstSymbol() string
	SecondSymbol() string

	// Init attaches an empty board and the opening turn to the game.
	Init(game *entity.Game)

	// Apply validates the move against the current board and turn, mutates
	// the board, runs win and fill detection, and either flips the turn or
	// finalizes the game. On error the game is untouched.
	Apply(game *entity.Game, move entity.Move) error
}

// ForType resolves the rules for a game type discriminator.
func ForType(gameType string) (Rules, error) {
	switch gameType {
	case entity.TypeTicTacToe:
		return ticTacToeRules{}, nil
	case entity.TypeConnectFour:
		return connectFourRules{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGameType, gameType)
	}
}
