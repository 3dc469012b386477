package rules

import (
	"fmt"

	"github.com/twohearts/couplegames-backend/internal/apperror"
	"github.com/twohearts/couplegames-backend/internal/entity"
)

const (
	ColorRed    = "red"
	ColorYellow = "yellow"

	connectFourRows = 6
	connectFourCols = 7
	winRunLength    = 4
)

// axes for the run scan: horizontal, vertical, both diagonals.
var connectFourAxes = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

type connectFourRules struct{}

func (connectFourRules) Type() string { return entity.TypeConnectFour }

func (connectFourRules) FirstSymbol() string { return ColorRed }

func (connectFourRules) SecondSymbol() string { return ColorYellow }

func (connectFourRules) Init(game *entity.Game) {
	game.Grid = &entity.ConnectFourBoard{}
	game.Turn = ColorRed
}

func (that connectFourRules) Apply(game *entity.Game, move entity.Move) error {
	if move.Column == nil {
		return fmt.Errorf("%w: column is required", apperror.ErrInvalidMove)
	}

	column := *move.Column
	if column < 0 || column >= connectFourCols {
		return fmt.Errorf("%w: column %d", apperror.ErrInvalidMove, column)
	}

	color := move.Mark()
	if color != ColorRed && color != ColorYellow {
		return fmt.Errorf("%w: color %q", apperror.ErrInvalidMove, color)
	}

	if game.Turn != color {
		return apperror.ErrNotYourTurn
	}

	row, err := DropRow(*game.Grid, column)
	if err != nil {
		return err
	}

	game.Grid[row][column] = color

	switch {
	case CheckConnectFourWinner(*game.Grid, row, column, color):
		game.Winner = color
		game.Status = entity.StatusFinished
	case ConnectFourIsFull(*game.Grid):
		game.Winner = entity.WinnerDraw
		game.Status = entity.StatusFinished
	default:
		game.Turn = that.toggle(color)
	}

	return nil
}

func (connectFourRules) toggle(color string) string {
	if color == ColorRed {
		return ColorYellow
	}
	return ColorRed
}

// DropRow returns the lowest unoccupied row of a column, scanning from the
// bottom row upward.
func DropRow(board entity.ConnectFourBoard, column int) (int, error) {
	for row := connectFourRows - 1; row >= 0; row-- {
		if board[row][column] == entity.EmptyCell {
			return row, nil
		}
	}

	return 0, fmt.Errorf("%w: column %d", apperror.ErrColumnFull, column)
}

// CheckConnectFourWinner reports whether the disc just placed at (row, col)
// completes a run of four. The placed cell counts once; each axis is walked
// up to three further steps in both directions.
func CheckConnectFourWinner(board entity.ConnectFourBoard, row, col int, color string) bool {
	for _, axis := range connectFourAxes {
		run := 1
		run += countRun(board, row, col, axis[0], axis[1], color)
		run += countRun(board, row, col, -axis[0], -axis[1], color)

		if run >= winRunLength {
			return true
		}
	}

	return false
}

func countRun(board entity.ConnectFourBoard, row, col, dRow, dCol int, color string) int {
	count := 0

	for step := 1; step < winRunLength; step++ {
		r := row + dRow*step
		c := col + dCol*step

		if r < 0 || r >= connectFourRows || c < 0 || c >= connectFourCols {
			break
		}
		if board[r][c] != color {
			break
		}

		count++
	}

	return count
}

// ConnectFourIsFull reports whether every cell of every row is occupied.
func ConnectFourIsFull(board entity.ConnectFourBoard) bool {
	for row := range board {
		for _, cell := range board[row] {
			if cell == entity.EmptyCell {
				return false
			}
		}
	}

	return true
}
