package models

// Group is a literal, stored group with a single-letter label ("A".."H").
// Combined labels like "ACD" are never stored; they are query keys resolved
// against the literal groups they span.
type Group struct {
	ID           int    `json:"id" db:"id"`
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	Label        string `json:"label" db:"label"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}
