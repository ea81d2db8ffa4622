// Package minimax finds the optimal tic-tac-toe move with depth-first minimax
// search and alpha-beta pruning. Every function is a pure function of the board
// it receives, so searches on independent boards can run concurrently.
package minimax

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const (
	// MaxUtility and MinUtility bound every value the search can return.
	MaxUtility = 1
	MinUtility = -1

	infinity = MaxUtility + 1
)

// Outcome is the value of a board under optimal play and the move that reaches it.
type Outcome struct {
	Value int
	// Action is nil when the searched board is terminal.
	Action *entity.Action
	// Nodes counts the boards visited, the root included.
	Nodes int
}

type Option func(*Searcher)

// WithWindowPropagation - passes the alpha-beta window down into child searches
// instead of starting every frame from the utility range.
func WithWindowPropagation() Option {
	return func(that *Searcher) {
		that.propagateWindow = true
	}
}

// Searcher carries search settings only; it holds no state between calls.
type Searcher struct {
	propagateWindow bool
}

// New - returns a searcher with frame-local bounds unless options say otherwise.
func New(opts ...Option) *Searcher {
	searcher := &Searcher{}
	for _, opt := range opts {
		opt(searcher)
	}

	return searcher
}

var defaultSearcher = New()

// Minimax - returns the optimal action for the player to move, nil on a terminal board.
func Minimax(board entity.Board) (*entity.Action, error) {
	return defaultSearcher.Minimax(board)
}

// Search - returns the minimax value of the board and the first action achieving it.
func Search(board entity.Board) (Outcome, error) {
	return defaultSearcher.Search(board)
}

// Minimax - returns the optimal action for the player to move, nil on a terminal board.
func (that *Searcher) Minimax(board entity.Board) (*entity.Action, error) {
	if tictactoe.Terminal(board) {
		return nil, nil
	}

	outcome, err := that.Search(board)
	if err != nil {
		return nil, err
	}

	return outcome.Action, nil
}

// Search - returns the minimax value of the board, the first action achieving it
// and the number of boards visited.
func (that *Searcher) Search(board entity.Board) (Outcome, error) {
	var outcome Outcome

	value, action, err := that.search(board, MinUtility, MaxUtility, &outcome.Nodes)
	if err != nil {
		return Outcome{}, err
	}

	outcome.Value = value
	outcome.Action = action

	return outcome, nil
}

// search - alpha and beta are the window inherited from the parent frame, only
// honoured when window propagation is on. Values at or beyond the utility range
// are exact, since no terminal board scores outside it.
func (that *Searcher) search(board entity.Board, alpha, beta int, nodes *int) (int, *entity.Action, error) {
	*nodes++

	if tictactoe.Terminal(board) {
		value, err := tictactoe.Utility(board)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to score terminal board %s: %w", board, err)
		}

		return value, nil, nil
	}

	player, err := tictactoe.Player(board)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get player for board %s: %w", board, err)
	}

	actions, err := tictactoe.Actions(board)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get actions for board %s: %w", board, err)
	}

	// without propagation every frame compares its own running bound against
	// the utility range only
	if !that.propagateWindow {
		alpha, beta = MinUtility, MaxUtility
	}

	var best *entity.Action
	if player == entity.X {
		// the frame's running best starts below any reachable value
		value := -infinity
		for i := range actions {
			child, err := tictactoe.Result(board, actions[i])
			if err != nil {
				return 0, nil, fmt.Errorf("failed to apply %s: %w", actions[i], err)
			}

			childValue, _, err := that.search(child, max(alpha, value), beta, nodes)
			if err != nil {
				return 0, nil, err
			}

			if childValue > value {
				value = childValue
				best = &actions[i]
			}

			if beta <= max(alpha, value) {
				break
			}
		}

		return value, best, nil
	}

	value := infinity
	for i := range actions {
		child, err := tictactoe.Result(board, actions[i])
		if err != nil {
			return 0, nil, fmt.Errorf("failed to apply %s: %w", actions[i], err)
		}

		childValue, _, err := that.search(child, alpha, min(beta, value), nodes)
		if err != nil {
			return 0, nil, err
		}

		if childValue < value {
			value = childValue
			best = &actions[i]
		}

		if min(beta, value) <= alpha {
			break
		}
	}

	return value, best, nil
}
