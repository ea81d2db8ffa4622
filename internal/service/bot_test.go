package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockSolutionRepo struct {
	mock.Mock
}

func (that *mockSolutionRepo) Save(ctx context.Context, board entity.Board, solution *entity.Solution) error {
	args := that.Called(ctx, board, solution)
	return args.Error(0)
}

func (that *mockSolutionRepo) GetByBoard(ctx context.Context, board entity.Board) (*entity.Solution, error) {
	args := that.Called(ctx, board)
	solution, _ := args.Get(0).(*entity.Solution)
	return solution, args.Error(1)
}

func newBot(t *testing.T, repo *mockSolutionRepo) BotService {
	t.Helper()
	t.Cleanup(func() { repo.AssertExpectations(t) })

	return NewBotService(suite.NewLogger(), repo, minimax.New())
}

func TestBotService_Solve(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the cached solution without searching", func(t *testing.T) {
		// Given: a cache holding a solution for the board
		repo := &mockSolutionRepo{}
		bot := newBot(t, repo)

		board := entity.InitialState()
		cached := &entity.Solution{Value: 0, Action: &entity.Action{Row: 2, Col: 2}}
		repo.On("GetByBoard", ctx, board).Return(cached, nil).Once()

		// When: solving the board
		solution, err := bot.Solve(ctx, board)

		// Then: the cached solution is returned as is
		require.NoError(t, err)
		assert.Same(t, cached, solution)
	})

	t.Run("Searches and stores on cache miss", func(t *testing.T) {
		// Given: an empty cache
		repo := &mockSolutionRepo{}
		bot := newBot(t, repo)

		board := entity.Board{{entity.X, entity.X, entity.Empty}, {entity.O, entity.O, entity.Empty}, {}}
		want := &entity.Solution{Value: 1, Action: &entity.Action{Row: 0, Col: 2}}

		repo.On("GetByBoard", ctx, board).Return(nil, repository.ErrSolutionNotFound).Once()
		repo.On("Save", ctx, board, want).Return(nil).Once()

		// When: solving the board
		solution, err := bot.Solve(ctx, board)

		// Then: the winning move is found and cached
		require.NoError(t, err)
		assert.Equal(t, want, solution)
	})

	t.Run("Cache failures fall back to search", func(t *testing.T) {
		// Given: a cache that is down
		repo := &mockSolutionRepo{}
		bot := newBot(t, repo)

		board := entity.InitialState()
		repo.On("GetByBoard", ctx, board).Return(nil, errRedisDown).Once()
		repo.On("Save", ctx, board, mock.AnythingOfType("*entity.Solution")).Return(errRedisDown).Once()

		// When: solving the board
		solution, err := bot.Solve(ctx, board)

		// Then: the search result is still returned
		require.NoError(t, err)
		assert.Equal(t, 0, solution.Value)
		require.NotNil(t, solution.Action)
	})

	t.Run("Rejects unreachable boards", func(t *testing.T) {
		repo := &mockSolutionRepo{}
		bot := newBot(t, repo)

		board := entity.Board{{entity.O, entity.O, entity.Empty}, {}, {}}

		solution, err := bot.Solve(ctx, board)

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
		assert.Nil(t, solution)
	})
}

func TestBotService_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Bot plays its optimal move", func(t *testing.T) {
		// Given: a game where the bot (O) must block the top row
		repo := &mockSolutionRepo{}
		bot := newBot(t, repo)

		game := entity.NewGame("g1", entity.X)
		game.Board = entity.Board{{entity.X, entity.X, entity.Empty}, {entity.Empty, entity.O, entity.Empty}, {}}

		repo.On("GetByBoard", ctx, mock.Anything).Return(nil, repository.ErrSolutionNotFound).Once()
		repo.On("Save", ctx, mock.Anything, mock.Anything).Return(nil).Once()

		// When: the bot moves
		action, err := bot.MakeTurn(ctx, game)

		// Then: it blocks at the top-right corner and the move is recorded
		require.NoError(t, err)
		assert.Equal(t, entity.Action{Row: 0, Col: 2}, action)
		assert.Equal(t, entity.O, game.Board.Cell(0, 2))
		assert.Equal(t, []entity.Action{{Row: 0, Col: 2}}, game.Moves)
	})

	t.Run("Not the bot's turn", func(t *testing.T) {
		repo := &mockSolutionRepo{}
		bot := newBot(t, repo)

		// Given: a fresh game where the human is X
		game := entity.NewGame("g1", entity.X)

		// When: the bot tries to move first
		_, err := bot.MakeTurn(ctx, game)

		// Then: ErrNotYourTurn is returned and the board is untouched
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.InitialState(), game.Board)
	})

	t.Run("Finished game", func(t *testing.T) {
		repo := &mockSolutionRepo{}
		bot := newBot(t, repo)

		game := entity.NewGame("g1", entity.O)
		game.Board = entity.Board{{entity.X, entity.X, entity.X}, {entity.O, entity.O, entity.Empty}, {}}

		_, err := bot.MakeTurn(ctx, game)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}
