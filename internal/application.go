package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solver/transport/rest"
	"github.com/rocketscienceinc/tictactoe-solver/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	var searchOpts []minimax.Option
	if conf.Search.WindowPropagation {
		searchOpts = append(searchOpts, minimax.WithWindowPropagation())
	}

	solutionRepo := repository.NewSolutionRepository(redisStorage.Connection, conf.Redis.SolutionTTL)
	gameRepo := repository.NewGameRepository(redisStorage.Connection)
	matchRepo := repository.NewMatchRepository(sqliteStorage.Connection)

	botService := service.NewBotService(logger, solutionRepo, minimax.New(searchOpts...))
	gameManager := usecase.NewGameManager(logger, gameRepo, matchRepo, botService)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameManager).Start(groupCtx, conf.HTTPPort); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gameManager).Start(groupCtx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}
		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
