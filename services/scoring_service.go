package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tippliga/tournament-engine/progression"
	"github.com/tippliga/tournament-engine/repositories"
)

// ScoringService turns final results into bet points.
type ScoringService interface {
	// RescoreMatch recomputes the points of every bet on a match. Nothing
	// is written while the result is not final. Returns the number of bets
	// whose points changed.
	RescoreMatch(ctx context.Context, matchID int) (int, error)
}

type scoringService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	betRepo   repositories.BetRepository
}

func NewScoringService(db *sql.DB, matchRepo repositories.MatchRepository, betRepo repositories.BetRepository) ScoringService {
	return &scoringService{
		db:        db,
		matchRepo: matchRepo,
		betRepo:   betRepo,
	}
}

func (s *scoringService) RescoreMatch(ctx context.Context, matchID int) (int, error) {
	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return 0, fmt.Errorf("%w: match %d", ErrMatchNotFound, matchID)
		}
		return 0, err
	}
	if !progression.MatchCompleted(m) {
		return 0, nil
	}

	bets, err := s.betRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, bet := range bets {
		var favouriteTeamID *int
		if bet.User != nil {
			favouriteTeamID = bet.User.FavouriteTeamID
		}
		// Bets tip the normal-time result.
		points := progression.Score(favouriteTeamID, m.Team1ID, m.Team2ID,
			m.GoalNormal1, m.GoalNormal2, bet.GoalBet1, bet.GoalBet2)

		if bet.Points != nil && *bet.Points == points {
			continue
		}
		if err := s.betRepo.UpdatePoints(ctx, s.db, bet.ID, &points); err != nil {
			return updated, fmt.Errorf("failed to store points of bet %d: %w", bet.ID, err)
		}
		updated++
	}
	return updated, nil
}
