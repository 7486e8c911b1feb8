package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/tippliga/tournament-engine/models"
	"github.com/tippliga/tournament-engine/provider"
	"github.com/tippliga/tournament-engine/repositories"
)

var testNow = time.Date(2026, 6, 20, 22, 0, 0, 0, time.UTC)

func intp(v int) *int { return &v }

func strp(s string) *string { return &s }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeMatchRepo struct {
	matches map[int]*models.Match

	participantWrites int
	resultWrites      int
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[int]*models.Match, len(matches))}
	for _, m := range matches {
		r.matches[m.ID] = m
	}
	return r
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return m, nil
}

func (r *fakeMatchRepo) GetByNumber(_ context.Context, tournamentID, matchN int) (*models.Match, error) {
	for _, m := range r.matches {
		if m.TournamentID == tournamentID && m.MatchN == matchN {
			return m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListByTournament(_ context.Context, tournamentID int, roundID *int) ([]*models.Match, error) {
	matches := make([]*models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if roundID != nil && m.RoundID != *roundID {
			continue
		}
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].MatchN < matches[j].MatchN })
	return matches, nil
}

func (r *fakeMatchRepo) UpdateParticipants(_ context.Context, _ repositories.SQLExecutor, matchID int, team1ID, team2ID *int) error {
	m, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Team1ID = team1ID
	m.Team2ID = team2ID
	r.participantWrites++
	return nil
}

func (r *fakeMatchRepo) UpdateResult(_ context.Context, _ repositories.SQLExecutor, matchID int, gn1, gn2, ge1, ge2, gp1, gp2 *int) error {
	m, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.GoalNormal1, m.GoalNormal2 = gn1, gn2
	m.GoalExtra1, m.GoalExtra2 = ge1, ge2
	m.GoalPenalty1, m.GoalPenalty2 = gp1, gp2
	r.resultWrites++
	return nil
}

type fakeGroupRepo struct {
	groups []*models.Group
}

func (r *fakeGroupRepo) GetByLabel(_ context.Context, tournamentID int, label string) (*models.Group, error) {
	for _, g := range r.groups {
		if g.TournamentID == tournamentID && g.Label == label {
			return g, nil
		}
	}
	return nil, repositories.ErrGroupNotFound
}

func (r *fakeGroupRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Group, error) {
	groups := make([]*models.Group, 0, len(r.groups))
	for _, g := range r.groups {
		if g.TournamentID == tournamentID {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

type fakeTeamRepo struct {
	teams []*models.Team
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	for _, t := range r.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) GetByExternalID(_ context.Context, tournamentID int, externalID string) (*models.Team, error) {
	for _, t := range r.teams {
		if t.TournamentID == tournamentID && t.ExternalID != nil && *t.ExternalID == externalID {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Team, error) {
	teams := make([]*models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		if t.TournamentID == tournamentID {
			teams = append(teams, t)
		}
	}
	return teams, nil
}

type fakeBetRepo struct {
	bets []*models.Bet

	pointsWrites int
}

func (r *fakeBetRepo) ListByMatch(_ context.Context, matchID int) ([]*models.Bet, error) {
	bets := make([]*models.Bet, 0, len(r.bets))
	for _, b := range r.bets {
		if b.MatchID == matchID {
			bets = append(bets, b)
		}
	}
	return bets, nil
}

func (r *fakeBetRepo) UpdatePoints(_ context.Context, _ repositories.SQLExecutor, betID int, points *int) error {
	for _, b := range r.bets {
		if b.ID == betID {
			b.Points = points
			r.pointsWrites++
			return nil
		}
	}
	return repositories.ErrBetNotFound
}

type fakeTournamentRepo struct {
	tournaments []*models.Tournament
	rounds      map[int][]*models.Round
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	for _, t := range r.tournaments {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (r *fakeTournamentRepo) List(_ context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	tournaments := make([]*models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		if status != nil && t.Status != *status {
			continue
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, nil
}

func (r *fakeTournamentRepo) ListRounds(_ context.Context, tournamentID int) ([]*models.Round, error) {
	return r.rounds[tournamentID], nil
}

func (r *fakeTournamentRepo) UpdateStatus(_ context.Context, id int, status models.TournamentStatus) error {
	for _, t := range r.tournaments {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return repositories.ErrTournamentNotFound
}

type fakeResultsProvider struct {
	results []provider.MatchData
	err     error

	calls int
}

func (p *fakeResultsProvider) FetchResults(_ context.Context, _ int) ([]provider.MatchData, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.results, nil
}
