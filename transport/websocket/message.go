package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const (
	actionNewGame  = "game:new"
	actionGameTurn = "game:turn"
	actionSolve    = "solve"
	actionUnknown  = "error"
)

type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Request struct {
	GameID string         `json:"game_id,omitempty"`
	Mark   entity.Cell    `json:"mark,omitempty"`
	Cell   *entity.Action `json:"cell,omitempty"`
	Board  *entity.Board  `json:"board,omitempty"`
}

type Response struct {
	Game     *entity.Game     `json:"game,omitempty"`
	Solution *entity.Solution `json:"solution,omitempty"`
	Error    string           `json:"error,omitempty"`
}

type Reply struct {
	Action  string   `json:"action"`
	Payload Response `json:"payload"`
}
