package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchResult(t *testing.T) {
	tests := []struct {
		name string
		side int

		gn1, ge1, gp1 *int
		gn2, ge2, gp2 *int

		want int
	}{
		{name: "normal time win", side: 1, gn1: intPtr(2), gn2: intPtr(0), want: ResultWin},
		{name: "normal time win seen from side 2", side: 2, gn1: intPtr(2), gn2: intPtr(0), want: ResultLoss},
		{name: "normal time draw", side: 1, gn1: intPtr(1), gn2: intPtr(1), want: ResultDraw},
		{
			name: "extra time decides over drawn normal time",
			side: 1,
			gn1:  intPtr(1), gn2: intPtr(1),
			ge1: intPtr(2), ge2: intPtr(1),
			want: ResultWin,
		},
		{
			name: "penalties decide over drawn extra time",
			side: 2,
			gn1:  intPtr(0), gn2: intPtr(0),
			ge1: intPtr(0), ge2: intPtr(0),
			gp1: intPtr(3), gp2: intPtr(4),
			want: ResultWin,
		},
		{name: "no goals at all", side: 1, want: ResultUndetermined},
		{name: "half-entered normal time", side: 1, gn1: intPtr(1), want: ResultUndetermined},
		{name: "invalid side", side: 3, gn1: intPtr(1), gn2: intPtr(0), want: ResultUndetermined},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchResult(tc.side, tc.gn1, tc.ge1, tc.gp1, tc.gn2, tc.ge2, tc.gp2)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchOutcomeTeamID(t *testing.T) {
	m := playedGroupMatch(1, 10, 20, 2, 1)

	winner := MatchOutcomeTeamID(m, true)
	require.NotNil(t, winner)
	assert.Equal(t, 10, *winner)

	loser := MatchOutcomeTeamID(m, false)
	require.NotNil(t, loser)
	assert.Equal(t, 20, *loser)
}

func TestMatchOutcomeTeamIDUnresolved(t *testing.T) {
	drawn := playedGroupMatch(1, 10, 20, 1, 1)
	assert.Nil(t, MatchOutcomeTeamID(drawn, true))

	noTeams := playedGroupMatch(1, 10, 20, 2, 1)
	noTeams.Team2ID = nil
	assert.Nil(t, MatchOutcomeTeamID(noTeams, true))

	noResult := playedGroupMatch(1, 10, 20, 0, 0)
	noResult.GoalNormal1 = nil
	noResult.GoalNormal2 = nil
	assert.Nil(t, MatchOutcomeTeamID(noResult, true))
}

func TestIsResultCompleted(t *testing.T) {
	tests := []struct {
		name              string
		isGroupMatch      bool
		isOvertimeAllowed bool

		gn1, ge1, gp1 *int
		gn2, ge2, gp2 *int

		want bool
	}{
		{name: "group match with normal goals", isGroupMatch: true, gn1: intPtr(1), gn2: intPtr(1), want: true},
		{name: "group match without goals", isGroupMatch: true, want: false},
		{
			name:              "knockout decided in normal time",
			isOvertimeAllowed: true,
			gn1:               intPtr(2), gn2: intPtr(0),
			want: true,
		},
		{
			name:              "knockout drawn, overtime still to come",
			isOvertimeAllowed: true,
			gn1:               intPtr(1), gn2: intPtr(1),
			want: false,
		},
		{
			name: "knockout drawn in a round without overtime",
			gn1:  intPtr(1), gn2: intPtr(1),
			want: true,
		},
		{
			name:              "knockout decided on penalties",
			isOvertimeAllowed: true,
			gn1:               intPtr(1), gn2: intPtr(1),
			ge1: intPtr(1), ge2: intPtr(1),
			gp1: intPtr(5), gp2: intPtr(4),
			want: true,
		},
		{
			name:              "knockout drawn after extra time, shootout pending",
			isOvertimeAllowed: true,
			gn1:               intPtr(1), gn2: intPtr(1),
			ge1: intPtr(2), ge2: intPtr(2),
			want: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := IsResultCompleted(tc.isGroupMatch, tc.isOvertimeAllowed,
				tc.gn1, tc.ge1, tc.gp1, tc.gn2, tc.ge2, tc.gp2)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchCompletedRequiresRound(t *testing.T) {
	m := playedGroupMatch(1, 10, 20, 1, 0)
	assert.True(t, MatchCompleted(m))

	m.Round = nil
	assert.False(t, MatchCompleted(m))
}
