package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tippliga/tournament-engine/models"
)

var ErrGroupNotFound = errors.New("group not found")

type GroupRepository interface {
	GetByLabel(ctx context.Context, tournamentID int, label string) (*models.Group, error)
	// ListByTournament returns the literal groups of a tournament, member
	// teams populated.
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Group, error)
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) GetByLabel(ctx context.Context, tournamentID int, label string) (*models.Group, error) {
	query := `
		SELECT id, tournament_id, label
		FROM groups
		WHERE tournament_id = $1 AND label = $2`

	g := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, tournamentID, label).Scan(&g.ID, &g.TournamentID, &g.Label)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to scan group %q of tournament %d: %w", label, tournamentID, err)
	}

	teams, err := r.listGroupTeams(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.Teams = teams
	return g, nil
}

func (r *postgresGroupRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Group, error) {
	query := `
		SELECT id, tournament_id, label
		FROM groups
		WHERE tournament_id = $1
		ORDER BY label ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		var g models.Group
		if scanErr := rows.Scan(&g.ID, &g.TournamentID, &g.Label); scanErr != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", scanErr)
		}
		groups = append(groups, &g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during group rows iteration: %w", err)
	}

	for _, g := range groups {
		teams, teamsErr := r.listGroupTeams(ctx, g.ID)
		if teamsErr != nil {
			return nil, teamsErr
		}
		g.Teams = teams
	}
	return groups, nil
}

func (r *postgresGroupRepository) listGroupTeams(ctx context.Context, groupID int) ([]models.Team, error) {
	query := `
		SELECT id, tournament_id, group_id, name, external_id, created_at
		FROM teams
		WHERE group_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams of group %d: %w", groupID, err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if scanErr := rows.Scan(&t.ID, &t.TournamentID, &t.GroupID, &t.Name, &t.ExternalID, &t.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", scanErr)
		}
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during team rows iteration: %w", err)
	}
	return teams, nil
}
