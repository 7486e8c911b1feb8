package models

import "time"

type User struct {
	ID              int       `json:"id" db:"id"`
	Nickname        string    `json:"nickname" db:"nickname"`
	FavouriteTeamID *int      `json:"favourite_team_id,omitempty" db:"favourite_team_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
