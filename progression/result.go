package progression

import (
	"github.com/tippliga/tournament-engine/models"
)

// Result codes of MatchResult, seen from one side of the match.
const (
	ResultWin          = 1
	ResultDraw         = 0
	ResultLoss         = -1
	ResultUndetermined = -2
)

// MatchResult compares the two teams' goals at the deepest phase that has
// information (penalties over extra time over normal time) and returns the
// sign of the goal difference from the given side's perspective. side must
// be 1 or 2; without a single complete phase the result is undetermined.
func MatchResult(side int, goalNormal1, goalExtra1, goalPenalty1, goalNormal2, goalExtra2, goalPenalty2 *int) int {
	if side != 1 && side != 2 {
		return ResultUndetermined
	}

	var diff int
	switch {
	case goalPenalty1 != nil && goalPenalty2 != nil:
		diff = *goalPenalty1 - *goalPenalty2
	case goalExtra1 != nil && goalExtra2 != nil:
		diff = *goalExtra1 - *goalExtra2
	case goalNormal1 != nil && goalNormal2 != nil:
		diff = *goalNormal1 - *goalNormal2
	default:
		return ResultUndetermined
	}

	if side == 2 {
		diff = -diff
	}
	return sign(diff)
}

// MatchResultOf is MatchResult applied to a stored match.
func MatchResultOf(m *models.Match, side int) int {
	return MatchResult(side,
		m.GoalNormal1, m.GoalExtra1, m.GoalPenalty1,
		m.GoalNormal2, m.GoalExtra2, m.GoalPenalty2)
}

// MatchOutcomeTeamID returns the id of the winning (or losing) team of a
// match, or nil while the match is unresolved, undecided or still drawn.
func MatchOutcomeTeamID(m *models.Match, winner bool) *int {
	if !m.HasTeams() {
		return nil
	}
	switch MatchResultOf(m, 1) {
	case ResultWin:
		if winner {
			return m.Team1ID
		}
		return m.Team2ID
	case ResultLoss:
		if winner {
			return m.Team2ID
		}
		return m.Team1ID
	default:
		return nil
	}
}

// IsResultCompleted reports whether an entered result is final for its
// stage. Group matches are done with normal time. Knockout matches are done
// once a phase produced a winner; a round without overtime (two-legged
// rounds) is also done on a drawn normal time, since no further phase may be
// entered for it.
func IsResultCompleted(isGroupMatch, isOvertimeAllowed bool, goalNormal1, goalExtra1, goalPenalty1, goalNormal2, goalExtra2, goalPenalty2 *int) bool {
	if goalNormal1 == nil || goalNormal2 == nil {
		return false
	}
	if isGroupMatch {
		return true
	}
	result := MatchResult(1, goalNormal1, goalExtra1, goalPenalty1, goalNormal2, goalExtra2, goalPenalty2)
	if result == ResultWin || result == ResultLoss {
		return true
	}
	return !isOvertimeAllowed
}

// MatchCompleted is IsResultCompleted applied to a stored match.
// Round must be populated.
func MatchCompleted(m *models.Match) bool {
	if m.Round == nil {
		return false
	}
	return IsResultCompleted(m.Round.IsGroupRound, m.Round.IsOvertimeAllowed,
		m.GoalNormal1, m.GoalExtra1, m.GoalPenalty1,
		m.GoalNormal2, m.GoalExtra2, m.GoalPenalty2)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
