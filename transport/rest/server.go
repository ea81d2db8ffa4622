package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	Solve(ctx context.Context, board entity.Board) (*entity.Solution, error)

	CreateGame(ctx context.Context, humanMark entity.Cell) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, action entity.Action) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	History(ctx context.Context, limit int) ([]*entity.Match, error)
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	return &Server{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

// Router - builds the HTTP routes of the solver API.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(that.requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/ping", that.handlePing)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/solve", that.handleSolve)

		r.Post("/games", that.handleCreateGame)
		r.Get("/games/{id}", that.handleGetGame)
		r.Post("/games/{id}/turn", that.handleGameTurn)
		r.Delete("/games/{id}", that.handleDeleteGame)

		r.Get("/history", that.handleHistory)
	})

	return router
}

// Start - serves the API until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// requestLogger - logs every request through slog once it is served.
func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			that.logger.Info("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"requestID", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
