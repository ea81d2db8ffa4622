package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	e = entity.Empty
	x = entity.X
	o = entity.O
)

func TestPlayer(t *testing.T) {
	t.Run("X moves first on the initial board", func(t *testing.T) {
		// Given: the initial board
		board := entity.InitialState()

		// When: asking whose turn it is
		mark, err := Player(board)

		// Then: it is X
		require.NoError(t, err)
		assert.Equal(t, entity.X, mark)
	})

	t.Run("O moves after X", func(t *testing.T) {
		// Given: a board with a single X
		board := entity.Board{{e, e, e}, {e, x, e}, {e, e, e}}

		// When: asking whose turn it is
		mark, err := Player(board)

		// Then: it is O
		require.NoError(t, err)
		assert.Equal(t, entity.O, mark)
	})

	t.Run("Terminal board has no next player", func(t *testing.T) {
		// Given: a board X has already won
		board := entity.Board{{x, x, x}, {o, o, e}, {e, e, e}}

		// When: asking whose turn it is
		mark, err := Player(board)

		// Then: ErrGameFinished is returned instead of a mark
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, entity.Empty, mark)
	})

	t.Run("Player alternates with every applied action", func(t *testing.T) {
		// Given: the initial board
		board := entity.InitialState()

		for !Terminal(board) {
			before, err := Player(board)
			require.NoError(t, err)

			actions, err := Actions(board)
			require.NoError(t, err)

			// When: the first legal action is applied
			board, err = Result(board, actions[0])
			require.NoError(t, err)

			// Then: the next player differs whenever one exists
			if after, err := Player(board); err == nil {
				assert.NotEqual(t, before, after)
			}
		}
	})
}

func TestActions(t *testing.T) {
	t.Run("All cells in row-major order on the initial board", func(t *testing.T) {
		// Given: the initial board
		board := entity.InitialState()

		// When: listing the actions
		actions, err := Actions(board)

		// Then: all nine cells are listed, rows first
		require.NoError(t, err)
		require.Len(t, actions, 9)
		for i, action := range actions {
			assert.Equal(t, entity.Action{Row: i / 3, Col: i % 3}, action)
		}
	})

	t.Run("Only empty cells are listed", func(t *testing.T) {
		// Given: a board with some marks
		board := entity.Board{{x, e, o}, {e, x, e}, {o, e, e}}

		// When: listing the actions
		actions, err := Actions(board)

		// Then: the empty cells are returned in row-major order
		require.NoError(t, err)
		assert.Equal(t, []entity.Action{
			{Row: 0, Col: 1},
			{Row: 1, Col: 0},
			{Row: 1, Col: 2},
			{Row: 2, Col: 1},
			{Row: 2, Col: 2},
		}, actions)
	})

	t.Run("Terminal board yields ErrGameFinished", func(t *testing.T) {
		// Given: a board O has won
		board := entity.Board{{o, x, x}, {x, o, e}, {x, e, o}}

		// When: listing the actions
		actions, err := Actions(board)

		// Then: no actions and ErrGameFinished
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Nil(t, actions)
	})
}

func TestResult(t *testing.T) {
	t.Run("First move at the center", func(t *testing.T) {
		// Given: the initial board
		board := entity.InitialState()

		// When: X plays the center
		next, err := Result(board, entity.Action{Row: 1, Col: 1})

		// Then: only the center holds X
		require.NoError(t, err)
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				if row == 1 && col == 1 {
					assert.Equal(t, entity.X, next.Cell(row, col))
					continue
				}
				assert.Equal(t, entity.Empty, next.Cell(row, col))
			}
		}
	})

	t.Run("Input board is not mutated", func(t *testing.T) {
		// Given: a board and a copy of it
		board := entity.Board{{x, e, e}, {e, e, e}, {e, e, e}}
		before := board

		// When: O plays a corner
		next, err := Result(board, entity.Action{Row: 2, Col: 2})
		require.NoError(t, err)

		// Then: the original is unchanged and the result holds O
		assert.Equal(t, before, board)
		assert.Equal(t, entity.O, next.Cell(2, 2))
		assert.Equal(t, entity.Empty, board.Cell(2, 2))
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X took the top-left corner
		board, err := Result(entity.InitialState(), entity.Action{Row: 0, Col: 0})
		require.NoError(t, err)

		// When: the same action is applied again
		_, err = Result(board, entity.Action{Row: 0, Col: 0})

		// Then: ErrInvalidAction is returned
		require.ErrorIs(t, err, apperror.ErrInvalidAction)
	})

	t.Run("Error on coordinates outside the board", func(t *testing.T) {
		board := entity.InitialState()

		for _, action := range []entity.Action{{Row: -1, Col: 0}, {Row: 0, Col: 3}, {Row: 3, Col: 3}} {
			// When: an out-of-range action is applied
			_, err := Result(board, action)

			// Then: ErrInvalidAction is returned
			require.ErrorIs(t, err, apperror.ErrInvalidAction, action.String())
		}
	})

	t.Run("Error on terminal board", func(t *testing.T) {
		// Given: a board X has won with empty cells left
		board := entity.Board{{x, x, x}, {o, o, e}, {e, e, e}}

		// When: a move into an empty cell is attempted
		_, err := Result(board, entity.Action{Row: 2, Col: 2})

		// Then: ErrInvalidAction wrapping ErrGameFinished is returned
		require.ErrorIs(t, err, apperror.ErrInvalidAction)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestWinner(t *testing.T) {
	t.Run("Every line is detected", func(t *testing.T) {
		for i, line := range WinLines {
			for _, mark := range []entity.Cell{entity.X, entity.O} {
				// Given: a board where only this line is filled with the mark
				board := entity.InitialState()
				for _, action := range line {
					board = board.Set(action, mark)
				}

				// When: the winner is determined
				winner := Winner(board)

				// Then: the mark wins
				assert.Equal(t, mark, winner, "line %d", i)
			}
		}
	})

	t.Run("Row of X", func(t *testing.T) {
		board := entity.Board{{x, x, x}, {e, e, e}, {e, e, e}}
		assert.Equal(t, entity.X, Winner(board))
	})

	t.Run("Main diagonal of O", func(t *testing.T) {
		board := entity.Board{{o, e, e}, {e, o, e}, {e, e, o}}
		assert.Equal(t, entity.O, Winner(board))
	})

	t.Run("No winner", func(t *testing.T) {
		board := entity.Board{{x, o, x}, {x, o, o}, {o, x, x}}
		assert.Equal(t, entity.Empty, Winner(board))
	})

	t.Run("Rows take precedence on constructed boards", func(t *testing.T) {
		// Given: an unreachable board where O owns the top row and X the middle one
		board := entity.Board{{o, o, o}, {x, x, x}, {e, e, e}}

		// When: the winner is determined
		winner := Winner(board)

		// Then: the row, evaluated first, decides
		assert.Equal(t, entity.O, winner)
	})
}

func TestTerminalAndUtility(t *testing.T) {
	t.Run("Initial board is not terminal", func(t *testing.T) {
		board := entity.InitialState()

		assert.False(t, Terminal(board))

		_, err := Utility(board)
		require.ErrorIs(t, err, apperror.ErrNotTerminal)
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a full board with no winner
		board := entity.Board{{x, o, x}, {x, o, o}, {o, x, x}}

		// When: checking the terminal state and the utility
		terminal := Terminal(board)
		utility, err := Utility(board)

		// Then: the game is over and drawn
		require.NoError(t, err)
		assert.True(t, terminal)
		assert.Equal(t, 0, utility)
	})

	t.Run("X win scores +1", func(t *testing.T) {
		board := entity.Board{{x, o, e}, {x, o, e}, {x, e, e}}

		utility, err := Utility(board)

		require.NoError(t, err)
		assert.Equal(t, 1, utility)
	})

	t.Run("O win scores -1", func(t *testing.T) {
		board := entity.Board{{x, x, o}, {x, o, e}, {o, e, e}}

		utility, err := Utility(board)

		require.NoError(t, err)
		assert.Equal(t, -1, utility)
	})

	t.Run("Won and full board is terminal", func(t *testing.T) {
		board := entity.Board{{x, x, x}, {o, o, x}, {x, o, o}}

		assert.True(t, Terminal(board))
		assert.Equal(t, entity.X, Winner(board))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		board entity.Board
		valid bool
	}{
		{name: "initial", board: entity.InitialState(), valid: true},
		{name: "one X", board: entity.Board{{x, e, e}, {e, e, e}, {e, e, e}}, valid: true},
		{name: "O first", board: entity.Board{{o, e, e}, {e, e, e}, {e, e, e}}, valid: false},
		{name: "two X in a row", board: entity.Board{{x, x, e}, {e, e, e}, {e, e, e}}, valid: false},
		{name: "X won", board: entity.Board{{x, x, x}, {o, o, e}, {e, e, e}}, valid: true},
		{name: "O moved after X won", board: entity.Board{{x, x, x}, {o, o, o}, {e, e, e}}, valid: false},
		{name: "X moved after O won", board: entity.Board{{o, o, o}, {x, x, e}, {x, x, e}}, valid: false},
		{name: "O won", board: entity.Board{{o, o, o}, {x, x, e}, {x, e, e}}, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.board)
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperror.ErrInvalidBoard)
		})
	}
}
