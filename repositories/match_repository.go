package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/tippliga/tournament-engine/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchTeamInvalid       = errors.New("match team conflict or invalid")
	ErrMatchNumberConflict    = errors.New("match number already taken in tournament")
	ErrMatchRoundInvalid      = errors.New("match round conflict or invalid")
)

type MatchRepository interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	GetByNumber(ctx context.Context, tournamentID, matchN int) (*models.Match, error)
	// ListByTournament returns a tournament's matches in bracket order,
	// Round populated from the joined rounds table.
	ListByTournament(ctx context.Context, tournamentID int, roundID *int) ([]*models.Match, error)
	UpdateParticipants(ctx context.Context, exec SQLExecutor, matchID int, team1ID, team2ID *int) error
	UpdateResult(ctx context.Context, exec SQLExecutor, matchID int, goalNormal1, goalNormal2, goalExtra1, goalExtra2, goalPenalty1, goalPenalty2 *int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchSelect = `
		SELECT m.id, m.tournament_id, m.round_id, m.match_n, m.team1_id, m.team2_id,
		       m.start_time, m.goal_normal1, m.goal_normal2, m.goal_extra1, m.goal_extra2,
		       m.goal_penalty1, m.goal_penalty2, m.participant_rule, m.created_at,
		       r.id, r.tournament_id, r.name, r.order_n, r.is_group_round, r.is_overtime_allowed
		FROM matches m
		JOIN rounds r ON r.id = m.round_id`

func scanMatch(row interface{ Scan(dest ...interface{}) error }) (*models.Match, error) {
	m := &models.Match{Round: &models.Round{}}
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.RoundID, &m.MatchN, &m.Team1ID, &m.Team2ID,
		&m.StartTime, &m.GoalNormal1, &m.GoalNormal2, &m.GoalExtra1, &m.GoalExtra2,
		&m.GoalPenalty1, &m.GoalPenalty2, &m.ParticipantRule, &m.CreatedAt,
		&m.Round.ID, &m.Round.TournamentID, &m.Round.Name, &m.Round.OrderN,
		&m.Round.IsGroupRound, &m.Round.IsOvertimeAllowed,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := matchSelect + ` WHERE m.id = $1`
	m, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) GetByNumber(ctx context.Context, tournamentID, matchN int) (*models.Match, error) {
	query := matchSelect + ` WHERE m.tournament_id = $1 AND m.match_n = $2`
	m, err := scanMatch(r.db.QueryRowContext(ctx, query, tournamentID, matchN))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %d of tournament %d: %w", matchN, tournamentID, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, roundID *int) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(matchSelect)
	queryBuilder.WriteString(` WHERE m.tournament_id = $1`)

	args := []interface{}{tournamentID}
	if roundID != nil {
		queryBuilder.WriteString(` AND m.round_id = $`)
		queryBuilder.WriteString(strconv.Itoa(len(args) + 1))
		args = append(args, *roundID)
	}
	queryBuilder.WriteString(` ORDER BY m.match_n ASC`)

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateParticipants(ctx context.Context, exec SQLExecutor, matchID int, team1ID, team2ID *int) error {
	query := `UPDATE matches SET team1_id = $1, team2_id = $2 WHERE id = $3`
	result, err := exec.ExecContext(ctx, query, team1ID, team2ID, matchID)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, matchID int, goalNormal1, goalNormal2, goalExtra1, goalExtra2, goalPenalty1, goalPenalty2 *int) error {
	query := `
		UPDATE matches
		SET goal_normal1 = $1, goal_normal2 = $2,
		    goal_extra1 = $3, goal_extra2 = $4,
		    goal_penalty1 = $5, goal_penalty2 = $6
		WHERE id = $7`
	result, err := exec.ExecContext(ctx, query,
		goalNormal1, goalNormal2, goalExtra1, goalExtra2, goalPenalty1, goalPenalty2, matchID)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_round_id_fkey":
			return ErrMatchRoundInvalid
		case "matches_team1_id_fkey", "matches_team2_id_fkey":
			return ErrMatchTeamInvalid
		case "matches_tournament_id_match_n_key":
			return ErrMatchNumberConflict
		}
	}
	return err
}
