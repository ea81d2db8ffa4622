package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

type solveRequest struct {
	Board *entity.Board `json:"board"`
}

type createGameRequest struct {
	Mark entity.Cell `json:"mark"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Board == nil {
		that.writeError(w, http.StatusBadRequest, "board is required")
		return
	}

	solution, err := that.gameUseCase.Solve(r.Context(), *req.Board)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, solution)
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	game, err := that.gameUseCase.CreateGame(r.Context(), req.Mark)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleGameTurn(w http.ResponseWriter, r *http.Request) {
	var action entity.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	game, err := that.gameUseCase.MakeTurn(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			that.writeError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = parsed
	}

	matches, err := that.gameUseCase.History(r.Context(), limit)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	if matches == nil {
		matches = []*entity.Match{}
	}

	that.writeJSON(w, http.StatusOK, matches)
}

// StatusCode - maps domain errors to HTTP statuses.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidAction), errors.Is(err, apperror.ErrInvalidBoard):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound), errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished), errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrConcurrentUpdate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *Server) writeAppError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeError(w, status, http.StatusText(status))
		return
	}

	that.writeError(w, status, err.Error())
}

func (that *Server) writeError(w http.ResponseWriter, status int, message string) {
	that.writeJSON(w, status, errorResponse{Error: message})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
