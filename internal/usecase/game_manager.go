package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, apply func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type matchRepo interface {
	Save(ctx context.Context, match *entity.Match) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Match, error)
}

type botService interface {
	Solve(ctx context.Context, board entity.Board) (*entity.Solution, error)
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Action, error)
}

type GameManager struct {
	logger *slog.Logger

	gameRepo   gameRepo
	matchRepo  matchRepo
	botService botService

	now func() time.Time
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, matchRepo matchRepo, botService botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		matchRepo:  matchRepo,
		botService: botService,

		now: time.Now,
	}
}

// Solve - returns the optimal move for an arbitrary board.
func (that *GameManager) Solve(ctx context.Context, board entity.Board) (*entity.Solution, error) {
	solution, err := that.botService.Solve(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("failed to solve board: %w", err)
	}

	return solution, nil
}

// CreateGame - starts a game against the bot. An Empty humanMark picks one at random;
// when the bot plays X it moves immediately.
func (that *GameManager) CreateGame(ctx context.Context, humanMark entity.Cell) (*entity.Game, error) {
	if humanMark == entity.Empty {
		humanMark = entity.RandomMark()
	}

	game := entity.NewGame(uuid.NewString(), humanMark)
	log := that.logger.With("method", "CreateGame", "gameID", game.ID)

	if game.BotMark == entity.X {
		if _, err := that.botService.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	log.Info("game created", "humanMark", game.HumanMark.String())

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - applies the human move, then the bot reply unless the game ended.
// The whole turn is stored atomically, a concurrent turn on the same game is replayed
// against the updated board.
func (that *GameManager) MakeTurn(ctx context.Context, id string, action entity.Action) (*entity.Game, error) {
	game, err := that.gameRepo.Update(ctx, id, func(game *entity.Game) error {
		return that.applyTurn(ctx, game, action)
	})
	if err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsFinished() {
		that.recordMatch(ctx, game)
	}

	return game, nil
}

// DeleteGame - removes a game session; finished games stay in the history.
func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "method", "DeleteGame", "gameID", id)

	return nil
}

func (that *GameManager) applyTurn(ctx context.Context, game *entity.Game, action entity.Action) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	mark, err := tictactoe.Player(game.Board)
	if err != nil {
		return fmt.Errorf("failed get next player: %w", err)
	}

	if mark != game.HumanMark {
		return apperror.ErrNotYourTurn
	}

	board, err := tictactoe.Result(game.Board, action)
	if err != nil {
		return err
	}

	game.Board = board
	game.Moves = append(game.Moves, action)

	if !tictactoe.Terminal(game.Board) {
		if _, err = that.botService.MakeTurn(ctx, game); err != nil {
			return fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if tictactoe.Terminal(game.Board) {
		game.Finish(tictactoe.Winner(game.Board))
	}

	return nil
}

// History - returns the most recent finished games; limit is clamped to [1, MaxHistoryLimit].
func (that *GameManager) History(ctx context.Context, limit int) ([]*entity.Match, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	matches, err := that.matchRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	return matches, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

// recordMatch - history is best effort, a failed write never fails the turn.
func (that *GameManager) recordMatch(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordMatch", "gameID", game.ID)

	match := &entity.Match{
		GameID:     game.ID,
		Winner:     game.Winner,
		HumanMark:  game.HumanMark,
		Moves:      game.Moves,
		FinishedAt: that.now(),
	}

	if err := that.matchRepo.Save(ctx, match); err != nil {
		log.Error("failed to save match", "error", err)
		return
	}

	log.Info("game finished", "winner", game.Winner)
}
