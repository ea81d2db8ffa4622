package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

var ErrSolutionNotFound = errors.New("solution not found")

// SolutionRepository caches search results per board, keyed by the board string.
type SolutionRepository interface {
	Save(ctx context.Context, board entity.Board, solution *entity.Solution) error
	GetByBoard(ctx context.Context, board entity.Board) (*entity.Solution, error)
}

type dbSolution struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSolutionRepository - ttl of zero keeps solutions forever.
func NewSolutionRepository(client *redis.Client, ttl time.Duration) SolutionRepository {
	return &dbSolution{
		client: client,
		ttl:    ttl,
	}
}

func solutionKey(board entity.Board) string {
	return "solution:" + board.String()
}

func (that *dbSolution) Save(ctx context.Context, board entity.Board, solution *entity.Solution) error {
	solutionJSON, err := json.Marshal(solution)
	if err != nil {
		return fmt.Errorf("failed to marshal solution: %w", err)
	}

	err = that.client.Set(ctx, solutionKey(board), solutionJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set solution: %w", err)
	}

	return nil
}

func (that *dbSolution) GetByBoard(ctx context.Context, board entity.Board) (*entity.Solution, error) {
	response, err := that.client.Get(ctx, solutionKey(board)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSolutionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get solution by board: %w", err)
	}

	var solution entity.Solution
	if err = json.Unmarshal([]byte(response), &solution); err != nil {
		return nil, fmt.Errorf("failed to unmarshal solution: %w", err)
	}

	return &solution, nil
}
