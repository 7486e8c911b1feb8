package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tippliga/tournament-engine/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByExternalID(ctx context.Context, tournamentID int, externalID string) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, tournament_id, group_id, name, external_id, created_at`

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	t := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.TournamentID, &t.GroupID, &t.Name, &t.ExternalID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team by id %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTeamRepository) GetByExternalID(ctx context.Context, tournamentID int, externalID string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE tournament_id = $1 AND external_id = $2`

	t := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, tournamentID, externalID).Scan(
		&t.ID, &t.TournamentID, &t.GroupID, &t.Name, &t.ExternalID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team by external id %q: %w", externalID, err)
	}
	return t, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE tournament_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if scanErr := rows.Scan(&t.ID, &t.TournamentID, &t.GroupID, &t.Name, &t.ExternalID, &t.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", scanErr)
		}
		teams = append(teams, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during team rows iteration: %w", err)
	}
	return teams, nil
}
