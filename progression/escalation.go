package progression

import (
	"errors"
	"fmt"
	"time"

	"github.com/tippliga/tournament-engine/models"
)

// Offsets from kickoff at which each result phase is expected to be entered.
// 105 minutes covers 90 minutes plus half-time and a stoppage budget; the
// deeper offsets extend that through extra time and the shootout.
const (
	NormalTimeOffset  = 105 * time.Minute
	ExtraTimeOffset   = 140 * time.Minute
	PenaltyTimeOffset = 150 * time.Minute
)

// ErrGroupMatchWithoutTeam flags a group match with an empty team slot.
// Group fixtures get their teams at tournament setup; a hole here means the
// stored data is inconsistent and must not be papered over.
var ErrGroupMatchWithoutTeam = errors.New("group match is missing a team")

// MatchEndTime is the expected end of normal time.
func MatchEndTime(m *models.Match) time.Time {
	return m.StartTime.Add(NormalTimeOffset)
}

// FinishedMatchEndTime returns the instant an already entered result became
// final, branching on the phase that holds the deciding score, or nil while
// the match is not complete.
func FinishedMatchEndTime(m *models.Match) *time.Time {
	if !MatchCompleted(m) {
		return nil
	}
	var t time.Time
	switch {
	case m.GoalPenalty1 != nil && m.GoalPenalty2 != nil:
		t = m.StartTime.Add(PenaltyTimeOffset)
	case m.GoalExtra1 != nil && m.GoalExtra2 != nil:
		t = m.StartTime.Add(ExtraTimeOffset)
	default:
		t = m.StartTime.Add(NormalTimeOffset)
	}
	return &t
}

// MatchResultEscalationTime returns the next instant the poller should
// expect a new result phase to exist, based on which phases are still empty,
// or nil once nothing more can be entered. Round must be populated.
func MatchResultEscalationTime(m *models.Match) *time.Time {
	if m.GoalNormal1 == nil || m.GoalNormal2 == nil {
		t := m.StartTime.Add(NormalTimeOffset)
		return &t
	}
	if m.Round == nil || m.Round.IsGroupRound || !m.Round.IsOvertimeAllowed {
		return nil
	}

	if *m.GoalNormal1 == *m.GoalNormal2 && (m.GoalExtra1 == nil || m.GoalExtra2 == nil) {
		t := m.StartTime.Add(ExtraTimeOffset)
		return &t
	}
	if m.GoalExtra1 != nil && m.GoalExtra2 != nil &&
		*m.GoalExtra1 == *m.GoalExtra2 && (m.GoalPenalty1 == nil || m.GoalPenalty2 == nil) {
		t := m.StartTime.Add(PenaltyTimeOffset)
		return &t
	}
	return nil
}

// MatchParticipantsEscalationTime returns the instant by which the matches
// feeding this match's unresolved team slots should all be over, i.e. when
// resolving the slots becomes worth retrying. Matches with both slots filled
// yield nil. Knockout chains are followed recursively; group-fed slots use
// the latest end time of the group's fixtures.
func MatchParticipantsEscalationTime(d *TournamentData, m *models.Match) (*time.Time, error) {
	if m.HasTeams() {
		return nil, nil
	}
	if m.IsGroupMatch() {
		return nil, fmt.Errorf("%w: match %d", ErrGroupMatchWithoutTeam, m.ID)
	}
	if m.ParticipantRule == nil {
		return nil, fmt.Errorf("match %d has empty team slots but no participant rule", m.ID)
	}

	pair, err := ParseRule(*m.ParticipantRule)
	if err != nil {
		return nil, err
	}

	var latest *time.Time
	for _, ref := range []SlotRef{pair.Slot1, pair.Slot2} {
		t, err := slotEscalationTime(d, m, ref)
		if err != nil {
			return nil, err
		}
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest, nil
}

func slotEscalationTime(d *TournamentData, m *models.Match, ref SlotRef) (time.Time, error) {
	if ref.IsGroupRef() {
		return groupEscalationTime(d, m, ref.Group.Label)
	}

	feeder := d.MatchByNumber(ref.MatchN)
	if feeder == nil {
		return time.Time{}, fmt.Errorf("match %d references unknown match number %d", m.ID, ref.MatchN)
	}
	end := MatchEndTime(feeder)
	if feeder.HasTeams() {
		return end, nil
	}
	// The feeder itself is still waiting for its participants; it cannot end
	// before they are known.
	upstream, err := MatchParticipantsEscalationTime(d, feeder)
	if err != nil {
		return time.Time{}, err
	}
	if upstream != nil && upstream.After(end) {
		return *upstream, nil
	}
	return end, nil
}

func groupEscalationTime(d *TournamentData, m *models.Match, label string) (time.Time, error) {
	var latest time.Time
	for _, letter := range label {
		teams, ok := d.Groups[string(letter)]
		if !ok {
			return time.Time{}, fmt.Errorf("match %d references unknown group %q", m.ID, string(letter))
		}
		members := make(map[int]bool, len(teams))
		for _, t := range teams {
			members[t.ID] = true
		}

		found := false
		for _, gm := range d.Matches {
			if !gm.IsGroupMatch() || !inGroup(gm, members) {
				continue
			}
			if !gm.HasTeams() {
				return time.Time{}, fmt.Errorf("%w: match %d", ErrGroupMatchWithoutTeam, gm.ID)
			}
			found = true
			if end := MatchEndTime(gm); end.After(latest) {
				latest = end
			}
		}
		if !found {
			return time.Time{}, fmt.Errorf("match %d references group %q with no fixtures", m.ID, string(letter))
		}
	}
	return latest, nil
}

func inGroup(m *models.Match, members map[int]bool) bool {
	if m.Team1ID != nil && members[*m.Team1ID] {
		return true
	}
	return m.Team2ID != nil && members[*m.Team2ID]
}

// MatchTriggerStartTime returns the earliest moment re-polling the match
// makes sense: the later of its participants and result escalation times,
// never before now.
func MatchTriggerStartTime(d *TournamentData, m *models.Match, now time.Time) (time.Time, error) {
	trigger := now

	participants, err := MatchParticipantsEscalationTime(d, m)
	if err != nil {
		return time.Time{}, err
	}
	if participants != nil && participants.After(trigger) {
		trigger = *participants
	}

	if result := MatchResultEscalationTime(m); result != nil && result.After(trigger) {
		trigger = *result
	}
	return trigger, nil
}
