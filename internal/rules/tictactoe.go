package rules

import (
	"fmt"

	"github.com/twohearts/couplegames-backend/internal/apperror"
	"github.com/twohearts/couplegames-backend/internal/entity"
)

const (
	SymbolX = "X"
	SymbolO = "O"
)

// WinTriples are the 8 winning lines of a 3x3 board: rows, columns, diagonals.
var WinTriples = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type ticTacToeRules struct{}

func (ticTacToeRules) Type() string { return entity.TypeTicTacToe }

func (ticTacToeRules) FirstSymbol() string { return SymbolX }

func (ticTacToeRules) SecondSymbol() string { return SymbolO }

func (ticTacToeRules) Init(game *entity.Game) {
	game.Cells = &entity.TicTacToeBoard{}
	game.Turn = SymbolX
}

func (that ticTacToeRules) Apply(game *entity.Game, move entity.Move) error {
	if move.Position == nil {
		return fmt.Errorf("%w: position is required", apperror.ErrInvalidMove)
	}

	cell := *move.Position
	if cell < 0 || cell >= len(game.Cells) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidMove, cell)
	}

	symbol := move.Mark()
	if symbol != SymbolX && symbol != SymbolO {
		return fmt.Errorf("%w: symbol %q", apperror.ErrInvalidMove, symbol)
	}

	if game.Turn != symbol {
		return apperror.ErrNotYourTurn
	}

	if game.Cells[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	game.Cells[cell] = symbol

	switch {
	case CheckTicTacToeWinner(*game.Cells) == symbol:
		game.Winner = symbol
		game.Status = entity.StatusFinished
	case TicTacToeIsFull(*game.Cells):
		game.Winner = entity.WinnerDraw
		game.Status = entity.StatusFinished
	default:
		game.Turn = that.toggle(symbol)
	}

	return nil
}

func (ticTacToeRules) toggle(symbol string) string {
	if symbol == SymbolX {
		return SymbolO
	}
	return SymbolX
}

// CheckTicTacToeWinner returns the symbol owning a complete triple, or "".
func CheckTicTacToeWinner(board entity.TicTacToeBoard) string {
	for _, triple := range WinTriples {
		a, b, c := board[triple[0]], board[triple[1]], board[triple[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return ""
}

// TicTacToeIsFull reports whether no empty cell remains.
func TicTacToeIsFull(board entity.TicTacToeBoard) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}
