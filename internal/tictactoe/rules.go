package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// WinLines lists the eight winning lines: rows, then columns, then diagonals.
var WinLines = [8][3]entity.Action{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// Player - returns the mark that moves next. X moves first, so equal counts mean X.
// A terminal board has no next player and yields apperror.ErrGameFinished.
func Player(board entity.Board) (entity.Cell, error) {
	if Terminal(board) {
		return entity.Empty, apperror.ErrGameFinished
	}

	if board.Count(entity.X) == board.Count(entity.O) {
		return entity.X, nil
	}

	return entity.O, nil
}

// Actions - returns the empty cells in row-major order.
func Actions(board entity.Board) ([]entity.Action, error) {
	if Terminal(board) {
		return nil, apperror.ErrGameFinished
	}

	return emptyCells(board), nil
}

func emptyCells(board entity.Board) []entity.Action {
	actions := make([]entity.Action, 0, board.EmptyCells())
	for row := 0; row < entity.Size; row++ {
		for col := 0; col < entity.Size; col++ {
			if board.Cell(row, col) == entity.Empty {
				actions = append(actions, entity.Action{Row: row, Col: col})
			}
		}
	}

	return actions
}

// Result - returns the board after the next player marks the action's cell.
// The input board is left untouched.
func Result(board entity.Board, action entity.Action) (entity.Board, error) {
	if err := validateAction(board, action); err != nil {
		return board, err
	}

	mark, err := Player(board)
	if err != nil {
		return board, fmt.Errorf("%w: %w", apperror.ErrInvalidAction, err)
	}

	return board.Set(action, mark), nil
}

// validateAction - checks the action is a member of Actions(board).
func validateAction(board entity.Board, action entity.Action) error {
	if !action.Valid() {
		return fmt.Errorf("%w: %s is outside the board", apperror.ErrInvalidAction, action)
	}

	if Terminal(board) {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidAction, apperror.ErrGameFinished)
	}

	if board.Cell(action.Row, action.Col) != entity.Empty {
		return fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidAction, action)
	}

	return nil
}

// Winner - returns the owner of the first complete line, or Empty.
func Winner(board entity.Board) entity.Cell {
	for _, line := range WinLines {
		a := board.Cell(line[0].Row, line[0].Col)
		b := board.Cell(line[1].Row, line[1].Col)
		c := board.Cell(line[2].Row, line[2].Col)

		if a != entity.Empty && a == b && b == c {
			return a
		}
	}

	return entity.Empty
}

// Terminal - reports whether someone has won or the board is full.
func Terminal(board entity.Board) bool {
	if Winner(board) != entity.Empty {
		return true
	}

	return board.EmptyCells() == 0
}

// Utility - scores a terminal board from X's point of view.
func Utility(board entity.Board) (int, error) {
	if !Terminal(board) {
		return 0, apperror.ErrNotTerminal
	}

	switch Winner(board) {
	case entity.X:
		return 1, nil
	case entity.O:
		return -1, nil
	default:
		return 0, nil
	}
}

// Validate - rejects boards that legal play from the initial state cannot produce.
func Validate(board entity.Board) error {
	diff := board.Count(entity.X) - board.Count(entity.O)
	if diff != 0 && diff != 1 {
		return fmt.Errorf("%w: X has %d more marks than O", apperror.ErrInvalidBoard, diff)
	}

	var xLine, oLine bool
	for _, line := range WinLines {
		a := board.Cell(line[0].Row, line[0].Col)
		if a == entity.Empty || a != board.Cell(line[1].Row, line[1].Col) || a != board.Cell(line[2].Row, line[2].Col) {
			continue
		}

		if a == entity.X {
			xLine = true
		} else {
			oLine = true
		}
	}

	switch {
	case xLine && oLine:
		return fmt.Errorf("%w: both players own a line", apperror.ErrInvalidBoard)
	case xLine && diff != 1:
		return fmt.Errorf("%w: X won but O moved after", apperror.ErrInvalidBoard)
	case oLine && diff != 0:
		return fmt.Errorf("%w: O won but X moved after", apperror.ErrInvalidBoard)
	}

	return nil
}
