package postgres

import "time"

type playerTableModel struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	JerseyNumber int       `db:"jersey_number"`
	Position     string    `db:"position"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
}
