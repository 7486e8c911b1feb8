package models

import "time"

// TournamentStatus mirrors the ENUM in the database.
type TournamentStatus string

const (
	StatusUpcoming TournamentStatus = "upcoming"
	StatusRunning  TournamentStatus = "running"
	StatusFinished TournamentStatus = "finished"
)

// Tournament is one real-world competition (World Cup, continental cup)
// the tipping rounds are built on.
type Tournament struct {
	ID        int              `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Year      int              `json:"year" db:"year"`
	Status    TournamentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`

	// Optional linked data, populated by the service layer.
	Rounds []Round `json:"rounds,omitempty" db:"-"`
	Groups []Group `json:"groups,omitempty" db:"-"`
}
