package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/tippliga/tournament-engine/models"
)

var (
	ErrBetNotFound    = errors.New("bet not found")
	ErrBetUserInvalid = errors.New("bet user conflict or invalid")
)

type BetRepository interface {
	// ListByMatch returns all bets on a match, each with its user populated
	// so the scorer can see favourite teams.
	ListByMatch(ctx context.Context, matchID int) ([]*models.Bet, error)
	UpdatePoints(ctx context.Context, exec SQLExecutor, betID int, points *int) error
}

type postgresBetRepository struct {
	db *sql.DB
}

func NewPostgresBetRepository(db *sql.DB) BetRepository {
	return &postgresBetRepository{db: db}
}

func (r *postgresBetRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Bet, error) {
	query := `
		SELECT b.id, b.user_id, b.match_id, b.goal_bet1, b.goal_bet2, b.points, b.updated_at,
		       u.id, u.nickname, u.favourite_team_id, u.created_at
		FROM bets b
		JOIN users u ON u.id = b.user_id
		WHERE b.match_id = $1
		ORDER BY b.id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets for match %d: %w", matchID, err)
	}
	defer rows.Close()

	bets := make([]*models.Bet, 0)
	for rows.Next() {
		bet := &models.Bet{User: &models.User{}}
		if scanErr := rows.Scan(
			&bet.ID, &bet.UserID, &bet.MatchID, &bet.GoalBet1, &bet.GoalBet2, &bet.Points, &bet.UpdatedAt,
			&bet.User.ID, &bet.User.Nickname, &bet.User.FavouriteTeamID, &bet.User.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan bet row: %w", scanErr)
		}
		bets = append(bets, bet)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during bet rows iteration: %w", err)
	}
	return bets, nil
}

func (r *postgresBetRepository) UpdatePoints(ctx context.Context, exec SQLExecutor, betID int, points *int) error {
	query := `UPDATE bets SET points = $1, updated_at = NOW() WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, points, betID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "bets_user_id_fkey" {
			return ErrBetUserInvalid
		}
		return fmt.Errorf("failed to update points of bet %d: %w", betID, err)
	}
	return checkAffectedRows(result, ErrBetNotFound)
}
