package services

import (
	"context"
	"fmt"

	"github.com/tippliga/tournament-engine/models"
	"github.com/tippliga/tournament-engine/progression"
	"github.com/tippliga/tournament-engine/repositories"
	"golang.org/x/sync/errgroup"
)

// loadTournamentData materializes the immutable snapshot the progression
// functions work on: all matches plus the group/team layout, fetched in
// parallel.
func loadTournamentData(ctx context.Context, matchRepo repositories.MatchRepository, groupRepo repositories.GroupRepository, tournamentID int) (*progression.TournamentData, error) {
	var (
		matches []*models.Match
		groups  []*models.Group
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = matchRepo.ListByTournament(gCtx, tournamentID, nil)
		if err != nil {
			return fmt.Errorf("failed to load matches of tournament %d: %w", tournamentID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		groups, err = groupRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load groups of tournament %d: %w", tournamentID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	groupTeams := make(map[string][]*models.Team, len(groups))
	for _, group := range groups {
		teams := make([]*models.Team, len(group.Teams))
		for i := range group.Teams {
			teams[i] = &group.Teams[i]
		}
		groupTeams[group.Label] = teams
	}

	return &progression.TournamentData{
		Matches: matches,
		Groups:  groupTeams,
	}, nil
}
