package progression

import (
	"sort"

	"github.com/tippliga/tournament-engine/models"
)

// GroupPosition addresses a team slot by group label and 1-based rank.
// The label is one letter for a literal group ("A") or several for a
// cross-group query ("ACD": the best position-3 team of groups A, C, D).
type GroupPosition struct {
	Label    string
	Position int
}

// ResolveGroupPosition resolves a group position to a team, or nil while the
// answer is not yet determined: an unfinished group, an ambiguous tie at the
// requested rank, or an unknown label all yield nil. The call is read-only
// and safe to repeat as results trickle in.
func ResolveGroupPosition(d *TournamentData, gp GroupPosition) *models.Team {
	if gp.Position < 1 {
		return nil
	}
	if len(gp.Label) == 1 {
		gt := resolveLiteral(d, gp.Label, gp.Position)
		if gt == nil {
			return nil
		}
		return gt.Team
	}
	return resolveCombined(d, gp)
}

func resolveLiteral(d *TournamentData, label string, position int) *GroupTeam {
	teams, ok := d.Groups[label]
	if !ok || position > len(teams) {
		return nil
	}
	groupTeams, _ := SortGroupTeams(teams, d.GroupMatches(label))
	if !IsGroupFinished(groupTeams) {
		return nil
	}
	return GroupTeamByPosition(groupTeams, position)
}

// resolveCombined answers "best N-th place" queries the way continental
// championships qualify third-placed teams: take each spanned group's own
// position-N team, then rank those candidates against each other on their
// full group-stage record with the same points comparator. A points tie
// between candidates cannot be broken (there is no cross-group head-to-head)
// and leaves the slot pending.
func resolveCombined(d *TournamentData, gp GroupPosition) *models.Team {
	candidates := make([]*GroupTeam, 0, len(gp.Label))
	for _, letter := range gp.Label {
		gt := resolveLiteral(d, string(letter), gp.Position)
		if gt == nil {
			return nil
		}
		candidates = append(candidates, gt)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ScorePoints() > candidates[j].ScorePoints()
	})
	if len(candidates) > 1 && candidates[0].ScorePoints() == candidates[1].ScorePoints() {
		return nil
	}
	return candidates[0].Team
}
