package progression

// Score turns a bet and a final result into points. Exact result: 3,
// correct goal difference: 2, correct outcome: 1, otherwise 0. Involvement
// of the user's favourite team doubles the points. Any missing team id or
// goal value scores 0.
func Score(favouriteTeamID, team1ID, team2ID, goalResult1, goalResult2, goalBet1, goalBet2 *int) int {
	if team1ID == nil || team2ID == nil {
		return 0
	}
	if goalResult1 == nil || goalResult2 == nil || goalBet1 == nil || goalBet2 == nil {
		return 0
	}

	var points int
	switch {
	case *goalResult1 == *goalBet1 && *goalResult2 == *goalBet2:
		points = 3
	case *goalResult1-*goalResult2 == *goalBet1-*goalBet2:
		points = 2
	case sign(*goalResult1-*goalResult2) == sign(*goalBet1-*goalBet2):
		points = 1
	default:
		points = 0
	}

	if favouriteTeamID != nil && (*favouriteTeamID == *team1ID || *favouriteTeamID == *team2ID) {
		points *= 2
	}
	return points
}
