package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// MatchRepository stores finished games.
type MatchRepository interface {
	Save(ctx context.Context, match *entity.Match) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Match, error)
}

type matchRepository struct {
	conn *sql.DB
}

func NewMatchRepository(conn *sql.DB) MatchRepository {
	return &matchRepository{
		conn: conn,
	}
}

func (that *matchRepository) Save(ctx context.Context, match *entity.Match) error {
	query := `INSERT OR REPLACE INTO matches (game_id, winner, human_mark, moves, finished_at) VALUES (?, ?, ?, ?, ?)`

	moves, err := json.Marshal(match.Moves)
	if err != nil {
		return fmt.Errorf("can't marshal moves: %w", err)
	}

	_, err = that.conn.ExecContext(ctx, query,
		match.GameID, match.Winner, match.HumanMark.String(), string(moves), match.FinishedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("can't save match: %w", err)
	}

	return nil
}

func (that *matchRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Match, error) {
	query := `SELECT game_id, winner, human_mark, moves, finished_at FROM matches ORDER BY finished_at DESC, game_id LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list matches: %w", err)
	}
	defer rows.Close()

	var matches []*entity.Match
	for rows.Next() {
		var (
			match      entity.Match
			humanMark  string
			moves      string
			finishedAt int64
		)

		if err = rows.Scan(&match.GameID, &match.Winner, &humanMark, &moves, &finishedAt); err != nil {
			return nil, fmt.Errorf("can't scan match: %w", err)
		}

		if match.HumanMark, err = entity.ParseCell(humanMark); err != nil {
			return nil, fmt.Errorf("can't parse human mark: %w", err)
		}

		if err = json.Unmarshal([]byte(moves), &match.Moves); err != nil {
			return nil, fmt.Errorf("can't unmarshal moves: %w", err)
		}

		match.FinishedAt = time.UnixMilli(finishedAt).UTC()
		matches = append(matches, &match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate matches: %w", err)
	}

	return matches, nil
}
