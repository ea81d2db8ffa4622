package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const (
	shutdownTimeout = 5 * time.Second
	writeTimeout    = 10 * time.Second
)

type gameUseCase interface {
	Solve(ctx context.Context, board entity.Board) (*entity.Solution, error)

	CreateGame(ctx context.Context, humanMark entity.Cell) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, action entity.Action) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, req *Request) Response

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionSolve] = server.handleSolve

	return server
}

func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Get("/ws", that.upgradeToWebSocket)

	return router
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
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

// upgradeToWebSocket - upgrades the connection and serves it until the client leaves.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket", "remote", req.RemoteAddr)

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client, one reply per message.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return nil
			}

			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
			)
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				log.Warn("failed to unmarshal message", "error", err)
				if err = that.sendMessage(conn, actionUnknown, Response{Error: "invalid message"}); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		response := that.dispatch(ctx, &message)

		if err := that.sendMessage(conn, message.Action, response); err != nil {
			return err
		}
	}
}

func (that *Server) dispatch(ctx context.Context, message *Message) Response {
	handler, ok := that.handlers[message.Action]
	if !ok {
		that.logger.Warn("unknown action", "action", message.Action)
		return Response{Error: fmt.Sprintf("unknown action %q", message.Action)}
	}

	var req Request
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &req); err != nil {
			return Response{Error: "invalid payload"}
		}
	}

	return handler(ctx, &req)
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload Response) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := conn.WriteJSON(Reply{Action: action, Payload: payload}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
