package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tippliga/tournament-engine/models"
)

func knockoutMatch(matchN int, rule string, overtime bool, start time.Time) *models.Match {
	return &models.Match{
		ID:              matchN,
		MatchN:          matchN,
		StartTime:       start,
		ParticipantRule: &rule,
		Round:           knockoutRound(overtime),
	}
}

func TestFinishedMatchEndTime(t *testing.T) {
	normal := playedGroupMatch(1, 10, 20, 2, 0)
	got := FinishedMatchEndTime(normal)
	require.NotNil(t, got)
	assert.Equal(t, testKickoff.Add(NormalTimeOffset), *got)

	extra := knockoutMatch(2, "A1-B2", true, testKickoff)
	extra.Team1ID = intPtr(10)
	extra.Team2ID = intPtr(20)
	extra.GoalNormal1 = intPtr(1)
	extra.GoalNormal2 = intPtr(1)
	extra.GoalExtra1 = intPtr(2)
	extra.GoalExtra2 = intPtr(1)
	got = FinishedMatchEndTime(extra)
	require.NotNil(t, got)
	assert.Equal(t, testKickoff.Add(ExtraTimeOffset), *got)

	extra.GoalExtra2 = intPtr(2)
	extra.GoalPenalty1 = intPtr(4)
	extra.GoalPenalty2 = intPtr(3)
	got = FinishedMatchEndTime(extra)
	require.NotNil(t, got)
	assert.Equal(t, testKickoff.Add(PenaltyTimeOffset), *got)
}

func TestFinishedMatchEndTimeUnfinished(t *testing.T) {
	pending := playedGroupMatch(1, 10, 20, 0, 0)
	pending.GoalNormal2 = nil
	assert.Nil(t, FinishedMatchEndTime(pending))

	drawn := knockoutMatch(2, "A1-B2", true, testKickoff)
	drawn.Team1ID = intPtr(10)
	drawn.Team2ID = intPtr(20)
	drawn.GoalNormal1 = intPtr(1)
	drawn.GoalNormal2 = intPtr(1)
	assert.Nil(t, FinishedMatchEndTime(drawn))
}

func TestMatchResultEscalationTime(t *testing.T) {
	m := knockoutMatch(1, "A1-B2", true, testKickoff)
	m.Team1ID = intPtr(10)
	m.Team2ID = intPtr(20)

	// No goals: normal time is due.
	got := MatchResultEscalationTime(m)
	require.NotNil(t, got)
	assert.Equal(t, testKickoff.Add(NormalTimeOffset), *got)

	// Drawn normal time: extra time is due.
	m.GoalNormal1 = intPtr(1)
	m.GoalNormal2 = intPtr(1)
	got = MatchResultEscalationTime(m)
	require.NotNil(t, got)
	assert.Equal(t, testKickoff.Add(ExtraTimeOffset), *got)

	// Drawn extra time: the shootout is due.
	m.GoalExtra1 = intPtr(0)
	m.GoalExtra2 = intPtr(0)
	got = MatchResultEscalationTime(m)
	require.NotNil(t, got)
	assert.Equal(t, testKickoff.Add(PenaltyTimeOffset), *got)

	// Shootout entered: nothing more can arrive.
	m.GoalPenalty1 = intPtr(4)
	m.GoalPenalty2 = intPtr(2)
	assert.Nil(t, MatchResultEscalationTime(m))
}

func TestMatchResultEscalationTimeStopsAtStageEnd(t *testing.T) {
	group := playedGroupMatch(1, 10, 20, 1, 1)
	assert.Nil(t, MatchResultEscalationTime(group))

	noOvertime := knockoutMatch(2, "A1-B2", false, testKickoff)
	noOvertime.Team1ID = intPtr(10)
	noOvertime.Team2ID = intPtr(20)
	noOvertime.GoalNormal1 = intPtr(1)
	noOvertime.GoalNormal2 = intPtr(1)
	assert.Nil(t, MatchResultEscalationTime(noOvertime))
}

func TestMatchParticipantsEscalationTimeResolvedMatch(t *testing.T) {
	m := knockoutMatch(1, "A1-B2", true, testKickoff)
	m.Team1ID = intPtr(10)
	m.Team2ID = intPtr(20)

	got, err := MatchParticipantsEscalationTime(&TournamentData{}, m)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMatchParticipantsEscalationTimeGroupFed(t *testing.T) {
	lastKickoff := testKickoff.Add(48 * time.Hour)
	groupA := []*models.Match{
		playedGroupMatch(1, 1, 2, 1, 0),
		playedGroupMatch(2, 1, 3, 1, 0),
		playedGroupMatch(3, 2, 3, 1, 0),
	}
	groupA[2].StartTime = lastKickoff

	quarterfinal := knockoutMatch(10, "A1-A2", true, testKickoff.Add(96*time.Hour))
	d := &TournamentData{
		Matches: append(groupA, quarterfinal),
		Groups:  map[string][]*models.Team{"A": teamList(1, 2, 3)},
	}

	got, err := MatchParticipantsEscalationTime(d, quarterfinal)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, lastKickoff.Add(NormalTimeOffset), *got)
}

func TestMatchParticipantsEscalationTimeKnockoutChain(t *testing.T) {
	semifinal1 := knockoutMatch(10, "A1-B2", true, testKickoff)
	semifinal1.Team1ID = intPtr(1)
	semifinal1.Team2ID = intPtr(2)

	semifinal2 := knockoutMatch(11, "B1-A2", true, testKickoff.Add(24*time.Hour))
	semifinal2.Team1ID = intPtr(3)
	semifinal2.Team2ID = intPtr(4)

	final := knockoutMatch(12, "W10-W11", true, testKickoff.Add(96*time.Hour))
	d := &TournamentData{Matches: []*models.Match{semifinal1, semifinal2, final}}

	got, err := MatchParticipantsEscalationTime(d, final)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, semifinal2.StartTime.Add(NormalTimeOffset), *got)
}

func TestMatchParticipantsEscalationTimeFollowsUnresolvedFeeders(t *testing.T) {
	// The final's feeder has no teams itself; its own feeders end after its
	// scheduled slot, so the chain's latest end time wins.
	quarterfinal := knockoutMatch(10, "A1-B2", true, testKickoff.Add(72*time.Hour))
	quarterfinal.Team1ID = intPtr(1)
	quarterfinal.Team2ID = intPtr(2)

	semifinal := knockoutMatch(11, "W10-L10", true, testKickoff)
	final := knockoutMatch(12, "W11-L11", true, testKickoff.Add(120*time.Hour))
	d := &TournamentData{Matches: []*models.Match{quarterfinal, semifinal, final}}

	got, err := MatchParticipantsEscalationTime(d, final)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, quarterfinal.StartTime.Add(NormalTimeOffset), *got)
}

func TestMatchParticipantsEscalationTimeIntegrityErrors(t *testing.T) {
	groupMatch := playedGroupMatch(1, 1, 2, 1, 0)
	groupMatch.Team2ID = nil
	_, err := MatchParticipantsEscalationTime(&TournamentData{}, groupMatch)
	assert.ErrorIs(t, err, ErrGroupMatchWithoutTeam)

	noRule := knockoutMatch(2, "A1-B2", true, testKickoff)
	noRule.ParticipantRule = nil
	_, err = MatchParticipantsEscalationTime(&TournamentData{}, noRule)
	assert.Error(t, err)

	badRule := knockoutMatch(3, "nonsense", true, testKickoff)
	_, err = MatchParticipantsEscalationTime(&TournamentData{}, badRule)
	assert.ErrorIs(t, err, ErrInvalidParticipantRule)

	unknownFeeder := knockoutMatch(4, "W98-W99", true, testKickoff)
	_, err = MatchParticipantsEscalationTime(&TournamentData{Matches: []*models.Match{unknownFeeder}}, unknownFeeder)
	assert.Error(t, err)

	unknownGroup := knockoutMatch(5, "Z1-Z2", true, testKickoff)
	_, err = MatchParticipantsEscalationTime(&TournamentData{
		Matches: []*models.Match{unknownGroup},
		Groups:  map[string][]*models.Team{},
	}, unknownGroup)
	assert.Error(t, err)
}

func TestMatchTriggerStartTime(t *testing.T) {
	now := testKickoff.Add(30 * time.Minute)

	// Result escalation in the future: the trigger follows it.
	m := playedGroupMatch(1, 1, 2, 0, 0)
	m.GoalNormal1 = nil
	m.GoalNormal2 = nil
	d := &TournamentData{
		Matches: []*models.Match{m},
		Groups:  map[string][]*models.Team{"A": teamList(1, 2)},
	}

	got, err := MatchTriggerStartTime(d, m, now)
	require.NoError(t, err)
	assert.Equal(t, testKickoff.Add(NormalTimeOffset), got)

	// Everything already due: the trigger is clamped to now.
	late := now.Add(6 * time.Hour)
	got, err = MatchTriggerStartTime(d, m, late)
	require.NoError(t, err)
	assert.Equal(t, late, got)
}
