package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/tippliga/tournament-engine/live"
	"github.com/tippliga/tournament-engine/models"
	"github.com/tippliga/tournament-engine/progression"
	"github.com/tippliga/tournament-engine/provider"
	"github.com/tippliga/tournament-engine/repositories"
)

// SaveMatchInput is one manually entered result. The stage facts travel
// with the goals so that structurally broken submissions are reported in
// full even when the match id itself is wrong.
type SaveMatchInput struct {
	MatchID           int
	IsGroupMatch      bool
	IsOvertimeAllowed bool
	StartTime         time.Time

	GoalNormal1  *int
	GoalNormal2  *int
	GoalExtra1   *int
	GoalExtra2   *int
	GoalPenalty1 *int
	GoalPenalty2 *int
}

type MatchService interface {
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
	ListMatchesByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)

	// SaveMatch validates and stores a result. On any rule violation it
	// returns a *progression.ValidationError carrying every violation
	// found, never just the first. On success the stored match is returned
	// and, if the result is now final, bracket resolution and bet scoring
	// are triggered.
	SaveMatch(ctx context.Context, in SaveMatchInput) (*models.Match, error)

	// UpdateMatchByMatchdata applies one row of the external results feed.
	// It maps the provider's team ids onto the physical team slots,
	// accepting reversed order, and writes only a result that is complete
	// and consistent for the match's stage. Anything else reports
	// "not updated" without an error.
	UpdateMatchByMatchdata(ctx context.Context, tournamentID int, data provider.MatchData) (bool, error)
}

type matchService struct {
	db             *sql.DB
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	bracketService BracketService
	scoringService ScoringService
	hub            *live.Hub
	logger         *slog.Logger
	now            func() time.Time
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	bracketService BracketService,
	scoringService ScoringService,
	hub *live.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		bracketService: bracketService,
		scoringService: scoringService,
		hub:            hub,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *matchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *matchService) ListMatchesByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, nil)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		return []*models.Match{}, nil
	}
	return matches, nil
}

func (s *matchService) SaveMatch(ctx context.Context, in SaveMatchInput) (*models.Match, error) {
	violations := progression.ValidateResult(progression.ResultInput{
		IsGroupMatch:      in.IsGroupMatch,
		IsOvertimeAllowed: in.IsOvertimeAllowed,
		StartTime:         in.StartTime,
		GoalNormal1:       in.GoalNormal1,
		GoalNormal2:       in.GoalNormal2,
		GoalExtra1:        in.GoalExtra1,
		GoalExtra2:        in.GoalExtra2,
		GoalPenalty1:      in.GoalPenalty1,
		GoalPenalty2:      in.GoalPenalty2,
	}, s.now())

	m, err := s.matchRepo.GetByID(ctx, in.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			// Reported alongside the structural violations, not instead of
			// them.
			violations = append(violations, progression.ViolationMatchNotFound)
			return nil, &progression.ValidationError{Violations: violations}
		}
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &progression.ValidationError{Violations: violations}
	}

	if err := s.matchRepo.UpdateResult(ctx, s.db, m.ID,
		in.GoalNormal1, in.GoalNormal2, in.GoalExtra1, in.GoalExtra2, in.GoalPenalty1, in.GoalPenalty2); err != nil {
		return nil, err
	}
	m.GoalNormal1, m.GoalNormal2 = in.GoalNormal1, in.GoalNormal2
	m.GoalExtra1, m.GoalExtra2 = in.GoalExtra1, in.GoalExtra2
	m.GoalPenalty1, m.GoalPenalty2 = in.GoalPenalty1, in.GoalPenalty2

	s.hub.BroadcastToRoom(TournamentRoom(m.TournamentID), live.Message{
		Type:    live.EventResultSaved,
		RoomID:  TournamentRoom(m.TournamentID),
		Payload: m,
	})

	if progression.MatchCompleted(m) {
		if err := s.onMatchCompleted(ctx, m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// onMatchCompleted runs the downstream progression of a final result:
// bracket resolution across the tournament, then bet scoring for the match.
func (s *matchService) onMatchCompleted(ctx context.Context, m *models.Match) error {
	resolved, err := s.bracketService.UpdateMatchParticipants(ctx, m.TournamentID, m.ID)
	if err != nil {
		return err
	}
	if resolved > 0 {
		s.logger.Info("bracket advanced",
			slog.Int("tournament_id", m.TournamentID),
			slog.Int("trigger_match_id", m.ID),
			slog.Int("matches_resolved", resolved))
	}

	scored, err := s.scoringService.RescoreMatch(ctx, m.ID)
	if err != nil {
		return err
	}
	if scored > 0 {
		s.logger.Info("bets scored",
			slog.Int("match_id", m.ID),
			slog.Int("bets", scored))
	}
	return nil
}

func (s *matchService) UpdateMatchByMatchdata(ctx context.Context, tournamentID int, data provider.MatchData) (bool, error) {
	team1, err := s.teamRepo.GetByExternalID(ctx, tournamentID, data.Team1ExternalID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return false, nil
		}
		return false, err
	}
	team2, err := s.teamRepo.GetByExternalID(ctx, tournamentID, data.Team2ExternalID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return false, nil
		}
		return false, err
	}

	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, nil)
	if err != nil {
		return false, err
	}

	m, reversed := findMatchForTeams(matches, team1.ID, team2.ID)
	if m == nil {
		return false, nil
	}

	gn1, gn2 := data.GoalNormal1, data.GoalNormal2
	ge1, ge2 := data.GoalExtra1, data.GoalExtra2
	gp1, gp2 := data.GoalPenalty1, data.GoalPenalty2
	if reversed {
		gn1, gn2 = gn2, gn1
		ge1, ge2 = ge2, ge1
		gp1, gp2 = gp2, gp1
	}

	in := progression.ResultInput{
		IsGroupMatch:      m.Round.IsGroupRound,
		IsOvertimeAllowed: m.Round.IsOvertimeAllowed,
		StartTime:         m.StartTime,
		GoalNormal1:       gn1,
		GoalNormal2:       gn2,
		GoalExtra1:        ge1,
		GoalExtra2:        ge2,
		GoalPenalty1:      gp1,
		GoalPenalty2:      gp2,
	}
	if len(progression.ValidateResult(in, s.now())) > 0 {
		return false, nil
	}
	if !progression.IsResultCompleted(m.Round.IsGroupRound, m.Round.IsOvertimeAllowed, gn1, ge1, gp1, gn2, ge2, gp2) {
		return false, nil
	}

	if err := s.matchRepo.UpdateResult(ctx, s.db, m.ID, gn1, gn2, ge1, ge2, gp1, gp2); err != nil {
		return false, err
	}
	m.GoalNormal1, m.GoalNormal2 = gn1, gn2
	m.GoalExtra1, m.GoalExtra2 = ge1, ge2
	m.GoalPenalty1, m.GoalPenalty2 = gp1, gp2

	s.hub.BroadcastToRoom(TournamentRoom(tournamentID), live.Message{
		Type:    live.EventResultSaved,
		RoomID:  TournamentRoom(tournamentID),
		Payload: m,
	})

	if err := s.onMatchCompleted(ctx, m); err != nil {
		return true, err
	}
	return true, nil
}

// findMatchForTeams locates the fixture between two teams, preferring one
// without a final result (replays aside, there is at most one). The second
// return value reports that the feed delivered the teams in reverse order.
func findMatchForTeams(matches []*models.Match, team1ID, team2ID int) (*models.Match, bool) {
	var fallback *models.Match
	fallbackReversed := false
	for _, m := range matches {
		if !m.HasTeams() {
			continue
		}
		var reversed bool
		switch {
		case *m.Team1ID == team1ID && *m.Team2ID == team2ID:
			reversed = false
		case *m.Team1ID == team2ID && *m.Team2ID == team1ID:
			reversed = true
		default:
			continue
		}
		if !progression.MatchCompleted(m) {
			return m, reversed
		}
		if fallback == nil {
			fallback = m
			fallbackReversed = reversed
		}
	}
	return fallback, fallbackReversed
}
