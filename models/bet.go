package models

import "time"

// Bet is a user's tip on the normal-time result of a match. Points stays
// NULL until the match result is final and the scoring run has seen it.
type Bet struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	MatchID   int       `json:"match_id" db:"match_id"`
	GoalBet1  *int      `json:"goal_bet1,omitempty" db:"goal_bet1"`
	GoalBet2  *int      `json:"goal_bet2,omitempty" db:"goal_bet2"`
	Points    *int      `json:"points,omitempty" db:"points"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	User *User `json:"user,omitempty" db:"-"`
}
