package progression

import (
	"sort"

	"github.com/tippliga/tournament-engine/models"
)

// GroupTeam is a team's derived group-stage record. It is built fresh for
// every standings query and never persisted.
type GroupTeam struct {
	Team    *models.Team
	Matches []*models.Match // played matches of this team within its group

	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int

	// PositionInGroup is the 1-based rank after tie-breaking. Teams that
	// remain inseparable share a position; no position is skipped.
	PositionInGroup int
}

// ScorePoints is the primary ranking key: 3 per win, 1 per draw.
func (gt *GroupTeam) ScorePoints() int {
	return 3*gt.Wins + gt.Draws
}

// SortGroupTeams ranks the teams of one literal group by their played
// matches and returns them best to worst, positions filled in. The second
// return value reports whether the final ordering still contains unresolved
// equality, which makes extraction by position ambiguous.
//
// Teams tied on points are re-ranked by the matches played exclusively among
// them (a head-to-head mini-league), recursively, until the tie resolves or
// the match subset stops shrinking. No further key (goal difference, goals
// scored) is applied; whatever equality head-to-head cannot resolve remains
// in the output as a shared position.
func SortGroupTeams(teams []*models.Team, matches []*models.Match) ([]*GroupTeam, bool) {
	played := playedMatches(matches)

	byID := make(map[int]*GroupTeam, len(teams))
	for _, t := range teams {
		byID[t.ID] = &GroupTeam{Team: t}
	}
	for _, m := range played {
		if gt, ok := byID[*m.Team1ID]; ok {
			gt.Matches = append(gt.Matches, m)
			gt.tally(*m.GoalNormal1, *m.GoalNormal2)
		}
		if gt, ok := byID[*m.Team2ID]; ok {
			gt.Matches = append(gt.Matches, m)
			gt.tally(*m.GoalNormal2, *m.GoalNormal1)
		}
	}

	ids := make([]int, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}

	ranked := rankTeams(ids, played)

	result := make([]*GroupTeam, 0, len(teams))
	equality := false
	position := 0
	for _, tied := range ranked {
		position++
		if len(tied) > 1 {
			equality = true
		}
		for _, id := range tied {
			gt := byID[id]
			gt.PositionInGroup = position
			result = append(result, gt)
		}
	}
	return result, equality
}

// IsGroupFinished reports whether every pairwise fixture has a result, i.e.
// each of the N teams has played N-1 matches.
func IsGroupFinished(groupTeams []*GroupTeam) bool {
	want := len(groupTeams) - 1
	for _, gt := range groupTeams {
		if len(gt.Matches) != want {
			return false
		}
	}
	return true
}

// GroupTeamByPosition extracts the unique occupant of a rank. It returns nil
// both when no team holds the position and when several do; the caller must
// treat either as "cannot resolve yet".
func GroupTeamByPosition(groupTeams []*GroupTeam, position int) *GroupTeam {
	var found *GroupTeam
	for _, gt := range groupTeams {
		if gt.PositionInGroup != position {
			continue
		}
		if found != nil {
			return nil
		}
		found = gt
	}
	return found
}

func (gt *GroupTeam) tally(goalsFor, goalsAgainst int) {
	gt.GoalsFor += goalsFor
	gt.GoalsAgainst += goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		gt.Wins++
	case goalsFor < goalsAgainst:
		gt.Losses++
	default:
		gt.Draws++
	}
}

// rankTeams orders teams best to worst as tie-groups: each inner slice holds
// teams that could not be separated. Ordering inside a tie-group follows the
// input order, which keeps the function deterministic.
func rankTeams(teamIDs []int, played []*models.Match) [][]int {
	points := make(map[int]int, len(teamIDs))
	for _, id := range teamIDs {
		points[id] = 0
	}
	for _, m := range played {
		p1, ok1 := points[*m.Team1ID]
		p2, ok2 := points[*m.Team2ID]
		if !ok1 || !ok2 {
			continue
		}
		switch {
		case *m.GoalNormal1 > *m.GoalNormal2:
			points[*m.Team1ID] = p1 + 3
		case *m.GoalNormal1 < *m.GoalNormal2:
			points[*m.Team2ID] = p2 + 3
		default:
			points[*m.Team1ID] = p1 + 1
			points[*m.Team2ID] = p2 + 1
		}
	}

	ordered := make([]int, len(teamIDs))
	copy(ordered, teamIDs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return points[ordered[i]] > points[ordered[j]]
	})

	ranked := make([][]int, 0, len(ordered))
	for start := 0; start < len(ordered); {
		end := start + 1
		for end < len(ordered) && points[ordered[end]] == points[ordered[start]] {
			end++
		}
		block := ordered[start:end]
		start = end

		if len(block) == 1 {
			ranked = append(ranked, []int{block[0]})
			continue
		}

		sub := matchesAmong(block, played)
		if len(sub) > 0 && len(sub) < len(played) {
			ranked = append(ranked, rankTeams(block, sub)...)
			continue
		}
		// No strictly smaller head-to-head subset exists; the tie stands.
		tied := make([]int, len(block))
		copy(tied, block)
		ranked = append(ranked, tied)
	}
	return ranked
}

func matchesAmong(teamIDs []int, matches []*models.Match) []*models.Match {
	members := make(map[int]bool, len(teamIDs))
	for _, id := range teamIDs {
		members[id] = true
	}
	among := make([]*models.Match, 0)
	for _, m := range matches {
		if members[*m.Team1ID] && members[*m.Team2ID] {
			among = append(among, m)
		}
	}
	return among
}

func playedMatches(matches []*models.Match) []*models.Match {
	played := make([]*models.Match, 0, len(matches))
	for _, m := range matches {
		if m.HasTeams() && m.GoalNormal1 != nil && m.GoalNormal2 != nil {
			played = append(played, m)
		}
	}
	return played
}
