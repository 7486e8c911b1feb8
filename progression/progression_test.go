package progression

import (
	"time"

	"github.com/tippliga/tournament-engine/models"
)

var testKickoff = time.Date(2026, 6, 14, 18, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func groupRound() *models.Round {
	return &models.Round{ID: 1, Name: "Group stage", OrderN: 1, IsGroupRound: true}
}

func knockoutRound(overtime bool) *models.Round {
	return &models.Round{ID: 2, Name: "Knockout", OrderN: 2, IsOvertimeAllowed: overtime}
}

func playedGroupMatch(matchN, team1, team2, goals1, goals2 int) *models.Match {
	return &models.Match{
		ID:          matchN,
		MatchN:      matchN,
		Team1ID:     intPtr(team1),
		Team2ID:     intPtr(team2),
		StartTime:   testKickoff,
		GoalNormal1: intPtr(goals1),
		GoalNormal2: intPtr(goals2),
		Round:       groupRound(),
	}
}

func teamList(ids ...int) []*models.Team {
	teams := make([]*models.Team, len(ids))
	for i, id := range ids {
		teams[i] = &models.Team{ID: id}
	}
	return teams
}
