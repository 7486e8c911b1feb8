package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tippliga/tournament-engine/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)
	ListRounds(ctx context.Context, tournamentID int) ([]*models.Round, error)
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, year, status, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.Name,
		&t.Year,
		&t.Status,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament by id %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	query := `
		SELECT id, name, year, status, created_at
		FROM tournaments`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY year DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := rows.Scan(&t.ID, &t.Name, &t.Year, &t.Status, &t.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", scanErr)
		}
		tournaments = append(tournaments, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) ListRounds(ctx context.Context, tournamentID int) ([]*models.Round, error) {
	query := `
		SELECT id, tournament_id, name, order_n, is_group_round, is_overtime_allowed
		FROM rounds
		WHERE tournament_id = $1
		ORDER BY order_n ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	rounds := make([]*models.Round, 0)
	for rows.Next() {
		var round models.Round
		if scanErr := rows.Scan(
			&round.ID,
			&round.TournamentID,
			&round.Name,
			&round.OrderN,
			&round.IsGroupRound,
			&round.IsOvertimeAllowed,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan round row: %w", scanErr)
		}
		rounds = append(rounds, &round)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during round rows iteration: %w", err)
	}
	return rounds, nil
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	query := `UPDATE tournaments SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament %d status: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
