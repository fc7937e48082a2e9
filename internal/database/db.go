package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"tricks/internal/model"
)

// Store records finished-game results. Live room state is never written
// here; games exist only in memory for the lifetime of the process.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	sqlStmt := `CREATE TABLE IF NOT EXISTS game_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		room_code TEXT,
		player_name TEXT,
		score INTEGER,
		won INTEGER DEFAULT 0,
		played_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// RecordGameResult writes one history row per player for a finished game.
func (s *Store) RecordGameResult(roomCode string, players []model.Player, scores map[string]int, winnerID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO game_history(room_code, player_name, score, won) VALUES(?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		won := 0
		if p.ID == winnerID {
			won = 1
		}
		if _, err := stmt.Exec(roomCode, p.Name, scores[p.ID], won); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetRoomStats aggregates all-time results for a room code, best total
// score first.
func (s *Store) GetRoomStats(roomCode string) []model.PlayerStat {
	stats := make([]model.PlayerStat, 0)

	rows, err := s.db.Query(`SELECT player_name, COUNT(*) as games, SUM(score) as total_score, SUM(won) as wins
		FROM game_history WHERE room_code = ? GROUP BY player_name ORDER BY total_score DESC`, roomCode)
	if err != nil {
		return stats
	}
	defer rows.Close()

	for rows.Next() {
		var st model.PlayerStat
		rows.Scan(&st.Name, &st.TotalGames, &st.TotalScore, &st.Wins)
		stats = append(stats, st)
	}
	return stats
}
