package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twohearts/couplegames-backend/internal/apperror"
	"github.com/twohearts/couplegames-backend/internal/entity"
)

func newPlayingTicTacToe() *entity.Game {
	game := &entity.Game{Type: entity.TypeTicTacToe, Status: entity.StatusPlaying}
	ticTacToeRules{}.Init(game)
	return game
}

func position(p int) *int { return &p }

func TestTicTacToe_Apply(t *testing.T) {
	t.Run("X wins the top row", func(t *testing.T) {
		// Given: a playing game
		game := newPlayingTicTacToe()
		r := ticTacToeRules{}

		// When: playing X@0, O@3, X@1, O@4, X@2
		moves := []entity.Move{
			{Position: position(0), Symbol: SymbolX},
			{Position: position(3), Symbol: SymbolO},
			{Position: position(1), Symbol: SymbolX},
			{Position: position(4), Symbol: SymbolO},
			{Position: position(2), Symbol: SymbolX},
		}
		for _, move := range moves {
			require.NoError(t, r.Apply(game, move))
		}

		// Then: the board holds the expected cells and X is the winner
		expected := entity.TicTacToeBoard{"X", "X", "X", "O", "O", "", "", "", ""}
		assert.Equal(t, expected, *game.Cells)
		assert.Equal(t, entity.StatusFinished, game.Status)
		assert.Equal(t, SymbolX, game.Winner)
	})

	t.Run("Full board with no triple is a draw", func(t *testing.T) {
		// Given: a playing game
		game := newPlayingTicTacToe()
		r := ticTacToeRules{}

		// When: filling the board in cell order 0,1,2,4,3,5,7,6,8
		// producing X,O,X / X,O,O / O,X,X - no complete triple
		order := []int{0, 1, 2, 4, 3, 5, 7, 6, 8}
		for _, cell := range order {
			move := entity.Move{Position: position(cell), Symbol: game.Turn}
			require.NoError(t, r.Apply(game, move))
		}

		// Then: the game is finished with a draw
		assert.Equal(t, entity.StatusFinished, game.Status)
		assert.Equal(t, entity.WinnerDraw, game.Winner)
	})

	t.Run("Turn alternates after an accepted non-terminal move", func(t *testing.T) {
		// Given: a playing game with X to move
		game := newPlayingTicTacToe()

		// When: X plays
		err := ticTacToeRules{}.Apply(game, entity.Move{Position: position(4), Symbol: SymbolX})

		// Then: it is O's turn
		require.NoError(t, err)
		assert.Equal(t, SymbolO, game.Turn)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a playing game with X to move
		game := newPlayingTicTacToe()

		// When: O tries to move
		err := ticTacToeRules{}.Apply(game, entity.Move{Position: position(0), Symbol: SymbolO})

		// Then: ErrNotYourTurn is returned and the board is untouched
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.TicTacToeBoard{}, *game.Cells)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: a game where X took cell 0
		game := newPlayingTicTacToe()
		r := ticTacToeRules{}
		require.NoError(t, r.Apply(game, entity.Move{Position: position(0), Symbol: SymbolX}))

		// When: O plays the same cell
		err := r.Apply(game, entity.Move{Position: position(0), Symbol: SymbolO})

		// Then: ErrCellOccupied is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, SymbolX, game.Cells[0])
		assert.Equal(t, SymbolO, game.Turn)
	})

	t.Run("Error on out-of-range position", func(t *testing.T) {
		game := newPlayingTicTacToe()

		err := ticTacToeRules{}.Apply(game, entity.Move{Position: position(9), Symbol: SymbolX})

		assert.ErrorIs(t, err, apperror.ErrInvalidMove)
	})

	t.Run("Error on missing position", func(t *testing.T) {
		game := newPlayingTicTacToe()

		err := ticTacToeRules{}.Apply(game, entity.Move{Symbol: SymbolX})

		assert.ErrorIs(t, err, apperror.ErrInvalidMove)
	})
}

func TestCheckTicTacToeWinner(t *testing.T) {
	t.Run("Detects every winning triple", func(t *testing.T) {
		// Given: each of the 8 winning triples owned by X
		for _, triple := range WinTriples {
			board := entity.TicTacToeBoard{}
			for _, cell := range triple {
				board[cell] = SymbolX
			}

			// When/Then: the winner is X with no other triple complete
			assert.Equal(t, SymbolX, CheckTicTacToeWinner(board), "triple %v", triple)
		}
	})

	t.Run("Returns empty string when nobody won", func(t *testing.T) {
		board := entity.TicTacToeBoard{"X", "O", "X", "", "", "", "", "", ""}

		assert.Equal(t, "", CheckTicTacToeWinner(board))
	})
}

func TestTicTacToeIsFull(t *testing.T) {
	t.Run("Empty board is not full", func(t *testing.T) {
		assert.False(t, TicTacToeIsFull(entity.TicTacToeBoard{}))
	})

	t.Run("Board with every cell occupied is full", func(t *testing.T) {
		board := entity.TicTacToeBoard{"X", "O", "X", "O", "X", "O", "X", "O", "X"}
		assert.True(t, TicTacToeIsFull(board))
	})
}

func TestForType(t *testing.T) {
	t.Run("Resolves tictactoe", func(t *testing.T) {
		r, err := ForType(entity.TypeTicTacToe)
		require.NoError(t, err)
		assert.Equal(t, entity.TypeTicTacToe, r.Type())
		assert.Equal(t, SymbolX, r.FirstSymbol())
		assert.Equal(t, SymbolO, r.SecondSymbol())
	})

	t.Run("Resolves connectfour", func(t *testing.T) {
		r, err := ForType(entity.TypeConnectFour)
		require.NoError(t, err)
		assert.Equal(t, entity.TypeConnectFour, r.Type())
		assert.Equal(t, ColorRed, r.FirstSymbol())
		assert.Equal(t, ColorYellow, r.SecondSymbol())
	})

	t.Run("Rejects unknown types", func(t *testing.T) {
		_, err := ForType("chess")
		assert.ErrorIs(t, err, apperror.ErrUnknownGameType)
	})
}
