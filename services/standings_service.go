package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tippliga/tournament-engine/models"
	"github.com/tippliga/tournament-engine/progression"
	"github.com/tippliga/tournament-engine/repositories"
)

// GroupStandings is the view of one group's table served to clients.
type GroupStandings struct {
	Label    string         `json:"label"`
	Finished bool           `json:"finished"`
	// Equality reports unresolved ties; extraction by position is refused
	// while it is set.
	Equality bool           `json:"equality"`
	Table    []StandingsRow `json:"table"`
}

type StandingsRow struct {
	Team         models.Team `json:"team"`
	Position     int         `json:"position"`
	Played       int         `json:"played"`
	Wins         int         `json:"wins"`
	Draws        int         `json:"draws"`
	Losses       int         `json:"losses"`
	GoalsFor     int         `json:"goals_for"`
	GoalsAgainst int         `json:"goals_against"`
	Points       int         `json:"points"`
}

type StandingsService interface {
	GetGroupStandings(ctx context.Context, tournamentID int, label string) (*GroupStandings, error)
	// ResolveGroupPosition answers "which team holds position P of group(s)
	// G". It returns (nil, nil) while the answer is pending: group
	// unfinished or the requested rank ambiguous. Repeated calls are
	// read-only and idempotent.
	ResolveGroupPosition(ctx context.Context, tournamentID int, gp progression.GroupPosition) (*models.Team, error)
}

type standingsService struct {
	matchRepo repositories.MatchRepository
	groupRepo repositories.GroupRepository
}

func NewStandingsService(matchRepo repositories.MatchRepository, groupRepo repositories.GroupRepository) StandingsService {
	return &standingsService{
		matchRepo: matchRepo,
		groupRepo: groupRepo,
	}
}

func (s *standingsService) GetGroupStandings(ctx context.Context, tournamentID int, label string) (*GroupStandings, error) {
	if len(label) != 1 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGroupLabel, label)
	}

	group, err := s.groupRepo.GetByLabel(ctx, tournamentID, label)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, fmt.Errorf("%w: %q in tournament %d", ErrGroupNotFound, label, tournamentID)
		}
		return nil, err
	}

	data, err := loadTournamentData(ctx, s.matchRepo, s.groupRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	teams := make([]*models.Team, len(group.Teams))
	for i := range group.Teams {
		teams[i] = &group.Teams[i]
	}
	groupTeams, equality := progression.SortGroupTeams(teams, data.GroupMatches(label))

	standings := &GroupStandings{
		Label:    label,
		Finished: progression.IsGroupFinished(groupTeams),
		Equality: equality,
		Table:    make([]StandingsRow, len(groupTeams)),
	}
	for i, gt := range groupTeams {
		standings.Table[i] = StandingsRow{
			Team:         *gt.Team,
			Position:     gt.PositionInGroup,
			Played:       len(gt.Matches),
			Wins:         gt.Wins,
			Draws:        gt.Draws,
			Losses:       gt.Losses,
			GoalsFor:     gt.GoalsFor,
			GoalsAgainst: gt.GoalsAgainst,
			Points:       gt.ScorePoints(),
		}
	}
	return standings, nil
}

func (s *standingsService) ResolveGroupPosition(ctx context.Context, tournamentID int, gp progression.GroupPosition) (*models.Team, error) {
	if gp.Label == "" {
		return nil, fmt.Errorf("%w: empty label", ErrInvalidGroupLabel)
	}
	if gp.Position < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGroupPosition, gp.Position)
	}

	data, err := loadTournamentData(ctx, s.matchRepo, s.groupRepo, tournamentID)
	if err != nil {
		return nil, err
	}
	return progression.ResolveGroupPosition(data, gp), nil
}
