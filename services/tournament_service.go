package services

import (
	"context"
	"errors"

	"github.com/tippliga/tournament-engine/models"
	"github.com/tippliga/tournament-engine/repositories"
	"golang.org/x/sync/errgroup"
)

type TournamentService interface {
	ListTournaments(ctx context.Context) ([]*models.Tournament, error)
	// GetTournament returns one tournament with its rounds and groups
	// (member teams included) populated.
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	groupRepo      repositories.GroupRepository
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository, groupRepo repositories.GroupRepository) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
	}
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	if tournaments == nil {
		return []*models.Tournament{}, nil
	}
	return tournaments, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rounds, roundsErr := s.tournamentRepo.ListRounds(gCtx, id)
		if roundsErr != nil {
			return roundsErr
		}
		t.Rounds = make([]models.Round, len(rounds))
		for i, r := range rounds {
			t.Rounds[i] = *r
		}
		return nil
	})
	g.Go(func() error {
		groups, groupsErr := s.groupRepo.ListByTournament(gCtx, id)
		if groupsErr != nil {
			return groupsErr
		}
		t.Groups = make([]models.Group, len(groups))
		for i, grp := range groups {
			t.Groups[i] = *grp
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}
