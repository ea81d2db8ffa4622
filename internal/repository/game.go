package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// ErrGameNotFound is apperror.ErrGameNotFound, so transports can match it without importing this package.
var (
	ErrGameNotFound     = apperror.ErrGameNotFound
	ErrConcurrentUpdate = apperror.ErrConcurrentUpdate
)

const maxUpdateRetries = 5

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, apply func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	gameKey := "game:" + game.ID
	err = that.client.Set(ctx, gameKey, gameJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	gameKey := "game:" + id

	response, err := that.client.Get(ctx, gameKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

// Update - reads the game, applies the change and writes it back in one WATCH transaction.
// When another writer touches the game in between, apply runs again on the fresh copy.
// An error from apply aborts without writing and is returned with the game as read.
func (that *dbGame) Update(ctx context.Context, id string, apply func(game *entity.Game) error) (*entity.Game, error) {
	gameKey := "game:" + id

	var game *entity.Game
	txFunc := func(tx *redis.Tx) error {
		game = nil

		response, err := tx.Get(ctx, gameKey).Result()
		if errors.Is(err, redis.Nil) {
			return ErrGameNotFound
		}

		if err != nil {
			return fmt.Errorf("failed to get game by id: %w", err)
		}

		var existingGame entity.Game
		if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
			return fmt.Errorf("failed to unmarshal game: %w", err)
		}

		game = &existingGame
		if err = apply(game); err != nil {
			return err
		}

		gameJSON, err := json.Marshal(game)
		if err != nil {
			return fmt.Errorf("could not marshal game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, gameKey, gameJSON, 0)
			return nil
		})

		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := that.client.Watch(ctx, txFunc, gameKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return game, fmt.Errorf("failed to update game: %w", err)
		}

		return game, nil
	}

	return nil, ErrConcurrentUpdate
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	gameKey := "game:" + id

	deleted, err := that.client.Del(ctx, gameKey).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}
