package models

import "time"

// Match is one fixture. The two team slots stay NULL for knockout matches
// until the participant rule can be resolved; group matches get their teams
// at tournament setup and must never lose them.
//
// Goal fields come in three phases. Extra-time goals may only exist on a
// drawn normal time, penalty goals only on a drawn extra time, and a stored
// penalty result is never itself a draw.
type Match struct {
	ID           int  `json:"id" db:"id"`
	TournamentID int  `json:"tournament_id" db:"tournament_id"`
	RoundID      int  `json:"round_id" db:"round_id"`
	MatchN       int  `json:"match_n" db:"match_n"`
	Team1ID      *int `json:"team1_id,omitempty" db:"team1_id"`
	Team2ID      *int `json:"team2_id,omitempty" db:"team2_id"`

	StartTime time.Time `json:"start_time" db:"start_time"`

	GoalNormal1  *int `json:"goal_normal1,omitempty" db:"goal_normal1"`
	GoalNormal2  *int `json:"goal_normal2,omitempty" db:"goal_normal2"`
	GoalExtra1   *int `json:"goal_extra1,omitempty" db:"goal_extra1"`
	GoalExtra2   *int `json:"goal_extra2,omitempty" db:"goal_extra2"`
	GoalPenalty1 *int `json:"goal_penalty1,omitempty" db:"goal_penalty1"`
	GoalPenalty2 *int `json:"goal_penalty2,omitempty" db:"goal_penalty2"`

	// ParticipantRule describes how the empty slots get filled,
	// e.g. "A1-B2", "ACD3-BEF3", "W37-L49". NULL for group matches.
	ParticipantRule *string `json:"participant_rule,omitempty" db:"participant_rule"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Round *Round `json:"round,omitempty" db:"-"`
	Team1 *Team  `json:"team1,omitempty" db:"-"`
	Team2 *Team  `json:"team2,omitempty" db:"-"`
}

// IsGroupMatch reports the stage of the match. Round must be populated.
func (m *Match) IsGroupMatch() bool {
	return m.Round != nil && m.Round.IsGroupRound
}

// HasTeams reports whether both slots are resolved.
func (m *Match) HasTeams() bool {
	return m.Team1ID != nil && m.Team2ID != nil
}
