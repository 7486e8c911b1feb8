package models

// Round is a tournament phase (group matchday, round of 16, final, ...).
// Whether a drawn knockout match goes to extra time is round data, not
// tournament subclassing: two-legged rounds simply carry IsOvertimeAllowed=false.
type Round struct {
	ID                int    `json:"id" db:"id"`
	TournamentID      int    `json:"tournament_id" db:"tournament_id"`
	Name              string `json:"name" db:"name"`
	OrderN            int    `json:"order_n" db:"order_n"`
	IsGroupRound      bool   `json:"is_group_round" db:"is_group_round"`
	IsOvertimeAllowed bool   `json:"is_overtime_allowed" db:"is_overtime_allowed"`
}
