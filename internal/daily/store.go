package daily

import (
	"context"
	"database/sql"
)

// Game names stored in the results table.
const (
	GameWordle      = "wordle"
	GameConnections = "connections"
)

// Result is one player's finished daily puzzle.
// Score is the guess count for wordle and the mistake count for connections.
type Result struct {
	PlayerID  string `json:"playerId"`
	Game      string `json:"game"`
	Date      string `json:"date"`
	Puzzle    string `json:"puzzle"`
	Won       bool   `json:"won"`
	Score     int    `json:"score"`
	Assisted  bool   `json:"assisted"`
	ElapsedMs int    `json:"elapsedMs"`
}

// LBRow is one leaderboard entry.
type LBRow struct {
	PlayerID  string `json:"playerId"`
	Score     int    `json:"score"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, playerID, game, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM results WHERE player_id=? AND game=? AND date=?`,
		playerID, game, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r. A second result for the same player, game and date
// is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results(player_id, game, date, puzzle, won, score, assisted, elapsed_ms)
		VALUES(?,?,?,?,?,?,?,?)`,
		r.PlayerID, r.Game, r.Date, r.Puzzle, r.Won, r.Score, r.Assisted, r.ElapsedMs,
	)
	return err
}

// Leaderboard returns the best unassisted wins for game on date.
func (s *Store) Leaderboard(ctx context.Context, game, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, score, elapsed_ms
		FROM results
		WHERE game=? AND date=? AND won=1 AND assisted=0
		ORDER BY score ASC, elapsed_ms ASC, created_at ASC
		LIMIT ?`, game, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.Score, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// History returns every result of playerID for game, oldest first.
func (s *Store) History(ctx context.Context, playerID, game string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, game, date, puzzle, won, score, assisted, elapsed_ms
		FROM results
		WHERE player_id=? AND game=?
		ORDER BY date ASC`, playerID, game,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.PlayerID, &r.Game, &r.Date, &r.Puzzle, &r.Won, &r.Score, &r.Assisted, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
