package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Size is the side length of the board.
const Size = 3

// Cell is the content of one board square: Empty, X or O.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

var (
	ErrInvalidCell       = errors.New("invalid cell value")
	ErrInvalidBoardKey   = errors.New("invalid board key")
	ErrInvalidBoardShape = errors.New("board must be 3x3")
)

func (that Cell) String() string {
	switch that {
	case X:
		return PlayerX
	case O:
		return PlayerO
	default:
		return EmptyCell
	}
}

// Opponent - returns the other mark, Empty stays Empty.
func (that Cell) Opponent() Cell {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	cell, err := ParseCell(string(text))
	if err != nil {
		return err
	}

	*that = cell

	return nil
}

// ParseCell - converts "X", "O" or "" (case-insensitive) to a Cell.
func ParseCell(s string) (Cell, error) {
	switch strings.ToUpper(s) {
	case PlayerX:
		return X, nil
	case PlayerO:
		return O, nil
	case EmptyCell:
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
}

// Action identifies the cell to mark, zero-based.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid - reports whether the action addresses a cell of a 3x3 board.
func (that Action) Valid() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Action) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is a value type: assigning or passing it copies all nine cells.
type Board [Size][Size]Cell

// InitialState - returns the empty board.
func InitialState() Board {
	return Board{}
}

// Cell - returns the content of the cell, panics when row or col is outside [0,2].
func (that Board) Cell(row, col int) Cell {
	return that[row][col]
}

// Set - returns a copy of the board with the cell at action replaced.
func (that Board) Set(action Action, cell Cell) Board {
	that[action.Row][action.Col] = cell
	return that
}

// Count - returns how many cells hold the given value.
func (that Board) Count(cell Cell) int {
	var n int
	for _, row := range that {
		for _, c := range row {
			if c == cell {
				n++
			}
		}
	}
	return n
}

// EmptyCells - returns how many cells are still free.
func (that Board) EmptyCells() int {
	return that.Count(Empty)
}

// String - renders the board as a 9-character row-major key, '.' for empty cells.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(Size * Size)

	for _, row := range that {
		for _, c := range row {
			switch c {
			case X:
				sb.WriteByte('X')
			case O:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
	}

	return sb.String()
}

// ParseBoard - reads a key produced by Board.String.
func ParseBoard(key string) (Board, error) {
	var board Board

	if len(key) != Size*Size {
		return board, fmt.Errorf("%w: length %d", ErrInvalidBoardKey, len(key))
	}

	for i := 0; i < len(key); i++ {
		var cell Cell
		switch key[i] {
		case 'X', 'x':
			cell = X
		case 'O', 'o':
			cell = O
		case '.':
			cell = Empty
		default:
			return Board{}, fmt.Errorf("%w: unexpected %q at %d", ErrInvalidBoardKey, key[i], i)
		}
		board[i/Size][i%Size] = cell
	}

	return board, nil
}

func (that Board) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal([Size][Size]Cell(that))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}

	return data, nil
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if len(rows) != Size {
		return fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoardShape, Size, len(rows))
	}

	var board Board
	for i, row := range rows {
		if len(row) != Size {
			return fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoardShape, i, len(row))
		}
		copy(board[i][:], row)
	}

	*that = board

	return nil
}
