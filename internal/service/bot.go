package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	Solve(ctx context.Context, board entity.Board) (*entity.Solution, error)
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Action, error)
}

type solutionRepo interface {
	Save(ctx context.Context, board entity.Board, solution *entity.Solution) error
	GetByBoard(ctx context.Context, board entity.Board) (*entity.Solution, error)
}

type searcher interface {
	Search(board entity.Board) (minimax.Outcome, error)
}

type botService struct {
	logger *slog.Logger

	solutionRepo solutionRepo
	searcher     searcher
}

func NewBotService(logger *slog.Logger, solutionRepo solutionRepo, searcher searcher) BotService {
	return &botService{
		logger:       logger.With("component", "bot"),
		solutionRepo: solutionRepo,
		searcher:     searcher,
	}
}

// Solve - returns the optimal move for the board, served from the cache when possible.
// Cache failures are logged and never fail the call.
func (that *botService) Solve(ctx context.Context, board entity.Board) (*entity.Solution, error) {
	log := that.logger.With("method", "Solve", "board", board.String())

	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}

	cached, err := that.solutionRepo.GetByBoard(ctx, board)
	if err == nil {
		log.Debug("solution served from cache")
		return cached, nil
	}

	log.Debug("solution cache miss", "reason", err)

	outcome, err := that.searcher.Search(board)
	if err != nil {
		return nil, fmt.Errorf("failed to search board: %w", err)
	}

	log.Debug("board searched", "value", outcome.Value, "nodes", outcome.Nodes)

	solution := &entity.Solution{
		Value:  outcome.Value,
		Action: outcome.Action,
	}

	if err = that.solutionRepo.Save(ctx, board, solution); err != nil {
		log.Error("failed to cache solution", "error", err)
	}

	return solution, nil
}

// MakeTurn - plays the bot's optimal move on the game board.
func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (entity.Action, error) {
	mark, err := tictactoe.Player(game.Board)
	if err != nil {
		return entity.Action{}, fmt.Errorf("failed to get next player: %w", err)
	}

	if mark != game.BotMark {
		return entity.Action{}, apperror.ErrNotYourTurn
	}

	solution, err := that.Solve(ctx, game.Board)
	if err != nil {
		return entity.Action{}, fmt.Errorf("failed to solve board: %w", err)
	}

	if solution.Action == nil {
		return entity.Action{}, ErrNoAvailableMoves
	}

	board, err := tictactoe.Result(game.Board, *solution.Action)
	if err != nil {
		return entity.Action{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	game.Board = board
	game.Moves = append(game.Moves, *solution.Action)

	return *solution.Action, nil
}
