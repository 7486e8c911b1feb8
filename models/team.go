package models

import "time"

type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	GroupID      *int      `json:"group_id,omitempty" db:"group_id"`
	Name         string    `json:"name" db:"name"`
	ExternalID   *string   `json:"-" db:"external_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Group *Group `json:"group,omitempty" db:"-"`
}
