package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tippliga/tournament-engine/live"
	"github.com/tippliga/tournament-engine/progression"
	"github.com/tippliga/tournament-engine/repositories"
)

// BracketService fills the team slots of knockout matches as their source
// data becomes available.
type BracketService interface {
	// UpdateMatchParticipants scans every match of the tournament that
	// still has unresolved team slots and fills in those whose participant
	// rule can now be resolved. Matches whose sources are still pending are
	// skipped silently and picked up by a later trigger. Returns how many
	// matches were newly resolved.
	//
	// The call is idempotent and re-entrant: invoking it after every
	// completed match converges the whole bracket without a fixed traversal
	// order. The surrounding system must serialize concurrent calls per
	// tournament.
	UpdateMatchParticipants(ctx context.Context, tournamentID, triggerMatchID int) (int, error)
}

type bracketService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	groupRepo repositories.GroupRepository
	hub       *live.Hub
	logger    *slog.Logger
}

func NewBracketService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	groupRepo repositories.GroupRepository,
	hub *live.Hub,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		db:        db,
		matchRepo: matchRepo,
		groupRepo: groupRepo,
		hub:       hub,
		logger:    logger,
	}
}

func (s *bracketService) UpdateMatchParticipants(ctx context.Context, tournamentID, triggerMatchID int) (int, error) {
	trigger, err := s.matchRepo.GetByID(ctx, triggerMatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return 0, fmt.Errorf("%w: match %d", ErrTriggerMatchNotFound, triggerMatchID)
		}
		return 0, err
	}
	if trigger.TournamentID != tournamentID {
		return 0, fmt.Errorf("%w: match %d belongs to tournament %d", ErrTriggerMatchNotFound, triggerMatchID, trigger.TournamentID)
	}

	data, err := loadTournamentData(ctx, s.matchRepo, s.groupRepo, tournamentID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, m := range data.Matches {
		if m.HasTeams() || m.ParticipantRule == nil {
			continue
		}

		pair, parseErr := ParseStoredRule(*m.ParticipantRule)
		if parseErr != nil {
			return updated, fmt.Errorf("%w: match %d carries unparseable rule %q: %v",
				ErrDataIntegrity, m.ID, *m.ParticipantRule, parseErr)
		}

		team1ID, resolveErr := s.resolveSlot(data, pair.Slot1)
		if resolveErr != nil {
			return updated, resolveErr
		}
		team2ID, resolveErr := s.resolveSlot(data, pair.Slot2)
		if resolveErr != nil {
			return updated, resolveErr
		}
		if team1ID == nil || team2ID == nil {
			continue
		}

		if err := s.matchRepo.UpdateParticipants(ctx, s.db, m.ID, team1ID, team2ID); err != nil {
			return updated, fmt.Errorf("failed to store resolved participants of match %d: %w", m.ID, err)
		}
		// Keep the snapshot current so later matches of this pass can chain
		// off the resolution.
		m.Team1ID = team1ID
		m.Team2ID = team2ID
		updated++

		s.logger.Info("match participants resolved",
			slog.Int("tournament_id", tournamentID),
			slog.Int("match_id", m.ID),
			slog.Int("match_n", m.MatchN),
			slog.String("rule", *m.ParticipantRule))
		s.hub.BroadcastToRoom(TournamentRoom(tournamentID), live.Message{
			Type:    live.EventParticipantsResolved,
			RoomID:  TournamentRoom(tournamentID),
			Payload: m,
		})
	}
	return updated, nil
}

// resolveSlot turns one slot reference into a team id, or nil while its
// source is still pending. Only a reference to a match number that does not
// exist at all is an error.
func (s *bracketService) resolveSlot(data *progression.TournamentData, ref progression.SlotRef) (*int, error) {
	if ref.IsGroupRef() {
		team := progression.ResolveGroupPosition(data, *ref.Group)
		if team == nil {
			return nil, nil
		}
		return &team.ID, nil
	}

	source := data.MatchByNumber(ref.MatchN)
	if source == nil {
		return nil, fmt.Errorf("%w: participant rule references unknown match number %d", ErrDataIntegrity, ref.MatchN)
	}
	if !progression.MatchCompleted(source) {
		return nil, nil
	}
	return progression.MatchOutcomeTeamID(source, ref.Winner), nil
}

// ParseStoredRule parses a participant rule string taken from the database.
func ParseStoredRule(rule string) (*progression.RulePair, error) {
	return progression.ParseRule(rule)
}

// TournamentRoom names the websocket room of one tournament.
func TournamentRoom(tournamentID int) string {
	return "tournament_" + strconv.Itoa(tournamentID)
}
