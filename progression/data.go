package progression

import (
	"github.com/tippliga/tournament-engine/models"
)

// TournamentData is the immutable snapshot of a tournament's fixtures the
// pure progression functions operate on. The caller materializes it once per
// request; nothing in this package mutates it or reaches for I/O.
type TournamentData struct {
	// Matches holds every match of the tournament, with Round populated.
	Matches []*models.Match
	// Groups maps a literal group label ("A".."H") to its member teams.
	Groups map[string][]*models.Team
}

// MatchByNumber finds a match by its tournament-wide sequence number.
func (d *TournamentData) MatchByNumber(matchN int) *models.Match {
	for _, m := range d.Matches {
		if m.MatchN == matchN {
			return m
		}
	}
	return nil
}

// GroupMatches returns the group-stage matches played within one literal group.
func (d *TournamentData) GroupMatches(label string) []*models.Match {
	teams, ok := d.Groups[label]
	if !ok {
		return nil
	}
	members := make(map[int]bool, len(teams))
	for _, t := range teams {
		members[t.ID] = true
	}

	matches := make([]*models.Match, 0)
	for _, m := range d.Matches {
		if !m.IsGroupMatch() || !m.HasTeams() {
			continue
		}
		if members[*m.Team1ID] && members[*m.Team2ID] {
			matches = append(matches, m)
		}
	}
	return matches
}
