package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

func (that *Server) handleNewGame(ctx context.Context, req *Request) Response {
	log := that.logger.With("method", "handleNewGame")

	game, err := that.gameUseCase.CreateGame(ctx, req.Mark)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return Response{Error: "failed to create a new game"}
	}

	log.Info("game created", "gameID", game.ID)

	return Response{Game: game}
}

func (that *Server) handleGameTurn(ctx context.Context, req *Request) Response {
	log := that.logger.With("method", "handleGameTurn")

	if req.GameID == "" {
		return Response{Error: "game_id is required"}
	}

	if req.Cell == nil {
		return Response{Error: "cell is required"}
	}

	log = log.With("gameID", req.GameID)

	game, err := that.gameUseCase.MakeTurn(ctx, req.GameID, *req.Cell)
	if err != nil {
		if isClientError(err) {
			return Response{Game: game, Error: err.Error()}
		}

		log.Error("failed to make turn", "error", err)
		return Response{Error: "failed to make turn"}
	}

	log.Info("player made a turn", "cell", req.Cell.String(), "status", game.Status)

	return Response{Game: game}
}

func (that *Server) handleSolve(ctx context.Context, req *Request) Response {
	if req.Board == nil {
		return Response{Error: "board is required"}
	}

	solution, err := that.gameUseCase.Solve(ctx, *req.Board)
	if err != nil {
		if isClientError(err) {
			return Response{Error: err.Error()}
		}

		that.logger.Error("failed to solve board", "error", err)
		return Response{Error: "failed to solve board"}
	}

	return Response{Solution: solution}
}

func isClientError(err error) bool {
	return errors.Is(err, apperror.ErrInvalidAction) ||
		errors.Is(err, apperror.ErrInvalidBoard) ||
		errors.Is(err, apperror.ErrGameNotFound) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrConcurrentUpdate)
}
