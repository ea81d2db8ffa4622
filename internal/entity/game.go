package entity

import (
	"math/rand"
	"time"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Game is a session between a human player and the solver bot.
type Game struct {
	ID        string   `json:"id"`
	Board     Board    `json:"board"`
	Winner    string   `json:"winner"`
	Status    string   `json:"status"`
	HumanMark Cell     `json:"human_mark"`
	BotMark   Cell     `json:"bot_mark"`
	Moves     []Action `json:"moves"`
}

func NewGame(id string, humanMark Cell) *Game {
	return &Game{
		ID:        id,
		Board:     InitialState(),
		Status:    StatusOngoing,
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
		Moves:     []Action{},
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// Finish - marks the game finished with the given winner, Empty meaning a tie.
func (that *Game) Finish(winner Cell) {
	that.Status = StatusFinished

	if winner == Empty {
		that.Winner = PlayerTie
		return
	}

	that.Winner = winner.String()
}

// RandomMark - picks X or O with equal probability.
func RandomMark() Cell {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return X
	}
	return O
}

// Match is a finished game as stored in the history.
type Match struct {
	GameID     string    `json:"game_id"`
	Winner     string    `json:"winner"`
	HumanMark  Cell      `json:"human_mark"`
	Moves      []Action  `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

// Solution is the outcome of a search as cached per board.
type Solution struct {
	Value  int     `json:"value"`
	Action *Action `json:"action"`
}
