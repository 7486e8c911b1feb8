package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tippliga/tournament-engine/models"
	"github.com/tippliga/tournament-engine/progression"
	"github.com/tippliga/tournament-engine/provider"
	"github.com/tippliga/tournament-engine/repositories"
)

// PollerService drives the external results feed. Each tick it checks, per
// running tournament, whether any unfinished match has passed its trigger
// time as computed by the escalation functions, and only then burns a
// provider call.
type PollerService struct {
	interval       time.Duration
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	groupRepo      repositories.GroupRepository
	matchService   MatchService
	provider       provider.ResultsProvider
	logger         *slog.Logger
	now            func() time.Time
}

func NewPollerService(
	interval time.Duration,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	groupRepo repositories.GroupRepository,
	matchService MatchService,
	resultsProvider provider.ResultsProvider,
	logger *slog.Logger,
) *PollerService {
	return &PollerService{
		interval:       interval,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		groupRepo:      groupRepo,
		matchService:   matchService,
		provider:       resultsProvider,
		logger:         logger,
		now:            time.Now,
	}
}

// Run polls until the context is cancelled. One failing tick is logged and
// does not stop the loop.
func (s *PollerService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.logger.Info("results poller started", slog.Duration("interval", s.interval))

	if err := s.Poll(ctx); err != nil {
		s.logger.Error("poller: initial run failed", slog.Any("error", err))
	}
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("results poller stopped")
			return
		case <-ticker.C:
			if err := s.Poll(ctx); err != nil {
				s.logger.Error("poller: run failed", slog.Any("error", err))
			}
		}
	}
}

// Poll runs one polling pass over all running tournaments.
func (s *PollerService) Poll(ctx context.Context) error {
	status := models.StatusRunning
	tournaments, err := s.tournamentRepo.List(ctx, &status)
	if err != nil {
		return err
	}

	for _, t := range tournaments {
		if err := s.pollTournament(ctx, t.ID); err != nil {
			if errors.Is(err, progression.ErrGroupMatchWithoutTeam) {
				// Broken fixture data; surface loudly instead of retrying
				// forever.
				s.logger.Error("poller: data integrity violation",
					slog.Int("tournament_id", t.ID), slog.Any("error", err))
				continue
			}
			return err
		}
	}
	return nil
}

func (s *PollerService) pollTournament(ctx context.Context, tournamentID int) error {
	data, err := loadTournamentData(ctx, s.matchRepo, s.groupRepo, tournamentID)
	if err != nil {
		return err
	}

	now := s.now()
	due := false
	for _, m := range data.Matches {
		if progression.MatchCompleted(m) {
			continue
		}
		trigger, err := progression.MatchTriggerStartTime(data, m, now)
		if err != nil {
			return err
		}
		if !trigger.After(now) {
			due = true
			break
		}
	}
	if !due {
		return nil
	}

	results, err := s.provider.FetchResults(ctx, tournamentID)
	if err != nil {
		// The provider being down is the provider's problem; next tick
		// retries.
		s.logger.Warn("poller: results provider unavailable",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil
	}

	applied := 0
	for _, row := range results {
		updated, err := s.matchService.UpdateMatchByMatchdata(ctx, tournamentID, row)
		if err != nil {
			return err
		}
		if updated {
			applied++
		}
	}
	if applied > 0 {
		s.logger.Info("poller: results applied",
			slog.Int("tournament_id", tournamentID), slog.Int("matches", applied))
	}
	return nil
}
