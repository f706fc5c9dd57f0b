package postgres

import "time"

type matchEventTableModel struct {
	ID        string    `db:"id"`
	MatchID   string    `db:"match_id"`
	PlayerID  string    `db:"player_id"`
	EventType string    `db:"event_type"`
	Minute    int       `db:"minute"`
	CreatedAt time.Time `db:"created_at"`
}
