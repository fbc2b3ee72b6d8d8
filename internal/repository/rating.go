package repository

import (
	"context"
	"database/sql"
	"fmt"

	"scrimbot/internal/domain"

	"github.com/rs/zerolog"
)

type RatingRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRatingRepository(sqlDB *sql.DB, logger zerolog.Logger) *RatingRepository {
	return &RatingRepository{db: sqlDB, logger: logger}
}

// Get returns the stored rating, or nil when the player has never been seen.
// Absence is not an error: callers fall back to the default of 300 points.
func (r *RatingRepository) Get(ctx context.Context, guildID string, id domain.PlayerID) (*domain.Rating, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT display_name, points, wins, losses, win_streak, loss_streak
		FROM ratings WHERE guild_id = ? AND player_id = ?`,
		guildID, id.Key())

	rating := domain.Rating{GuildID: guildID, PlayerID: id}
	err := row.Scan(&rating.DisplayName, &rating.Points, &rating.Wins,
		&rating.Losses, &rating.WinStreak, &rating.LossStreak)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return &rating, nil
}

// Ensure creates the rating row lazily with default points, or refreshes the
// display name if the row exists.
func (r *RatingRepository) Ensure(ctx context.Context, guildID string, id domain.PlayerID, displayName string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ratings (guild_id, player_id, display_name)
		VALUES (?, ?, ?)
		ON CONFLICT (guild_id, player_id) DO UPDATE SET
			display_name = excluded.display_name,
			updated_at = CURRENT_TIMESTAMP`,
		guildID, id.Key(), displayName)
	if err != nil {
		return fmt.Errorf("failed to ensure rating row: %w", err)
	}
	return nil
}

// SetPoints is the manual override: upserts the row with the given points.
func (r *RatingRepository) SetPoints(ctx context.Context, guildID string, id domain.PlayerID, displayName string, points int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ratings (guild_id, player_id, display_name, points)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (guild_id, player_id) DO UPDATE SET
			display_name = excluded.display_name,
			points = excluded.points,
			updated_at = CURRENT_TIMESTAMP`,
		guildID, id.Key(), displayName, points)
	if err != nil {
		return fmt.Errorf("failed to set points: %w", err)
	}
	return nil
}

// SetRecord overrides wins/losses and resets both streaks. Points are left
// untouched on existing rows.
func (r *RatingRepository) SetRecord(ctx context.Context, guildID string, id domain.PlayerID, displayName string, wins, losses int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ratings (guild_id, player_id, display_name, wins, losses)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (guild_id, player_id) DO UPDATE SET
			display_name = excluded.display_name,
			wins = excluded.wins,
			losses = excluded.losses,
			win_streak = 0,
			loss_streak = 0,
			updated_at = CURRENT_TIMESTAMP`,
		guildID, id.Key(), displayName, wins, losses)
	if err != nil {
		return fmt.Errorf("failed to set record: %w", err)
	}
	return nil
}

// ApplyDelta atomically increments wins, losses and points, creating the row
// with defaults first if needed.
func (r *RatingRepository) ApplyDelta(ctx context.Context, guildID string, id domain.PlayerID, winsDelta, lossesDelta, pointsDelta int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ratings (guild_id, player_id, points, wins, losses)
		VALUES (?, ?, 300 + ?, ?, ?)
		ON CONFLICT (guild_id, player_id) DO UPDATE SET
			points = ratings.points + excluded.points - 300,
			wins = ratings.wins + excluded.wins,
			losses = ratings.losses + excluded.losses,
			updated_at = CURRENT_TIMESTAMP`,
		guildID, id.Key(), pointsDelta, winsDelta, lossesDelta)
	if err != nil {
		return fmt.Errorf("failed to apply rating delta: %w", err)
	}
	return nil
}

// IncrementWinStreak bumps the win streak and zeroes the loss streak in one
// statement. The stored counter is not capped; only the applied bonus is.
func (r *RatingRepository) IncrementWinStreak(ctx context.Context, guildID string, id domain.PlayerID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE ratings SET win_streak = win_streak + 1, loss_streak = 0,
			updated_at = CURRENT_TIMESTAMP
		WHERE guild_id = ? AND player_id = ?`,
		guildID, id.Key())
	if err != nil {
		return fmt.Errorf("failed to increment win streak: %w", err)
	}
	return nil
}

// IncrementLossStreak is the mirror of IncrementWinStreak.
func (r *RatingRepository) IncrementLossStreak(ctx context.Context, guildID string, id domain.PlayerID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE ratings SET loss_streak = loss_streak + 1, win_streak = 0,
			updated_at = CURRENT_TIMESTAMP
		WHERE guild_id = ? AND player_id = ?`,
		guildID, id.Key())
	if err != nil {
		return fmt.Errorf("failed to increment loss streak: %w", err)
	}
	return nil
}

func (r *RatingRepository) Top(ctx context.Context, guildID string, limit int) ([]domain.Rating, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT player_id, display_name, points, wins, losses, win_streak, loss_streak,
			CASE WHEN (wins + losses) = 0 THEN 0.0
			     ELSE CAST(wins AS REAL) / (wins + losses) END AS winrate
		FROM ratings
		WHERE guild_id = ?
		ORDER BY points DESC, winrate DESC, wins DESC
		LIMIT ?`,
		guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var result []domain.Rating
	for rows.Next() {
		rating := domain.Rating{GuildID: guildID}
		var key string
		if err := rows.Scan(&key, &rating.DisplayName, &rating.Points, &rating.Wins,
			&rating.Losses, &rating.WinStreak, &rating.LossStreak, &rating.Winrate); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		rating.PlayerID = domain.ParsePlayerID(key)
		result = append(result, rating)
	}
	return result, rows.Err()
}

// Delete removes the rating row and any signup entries for the player. An
// explicit administrative operation; nothing expires on its own.
func (r *RatingRepository) Delete(ctx context.Context, guildID string, id domain.PlayerID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	key := id.Key()
	for _, q := range []string{
		`DELETE FROM ratings WHERE guild_id = ? AND player_id = ?`,
		`DELETE FROM signup_participants WHERE guild_id = ? AND player_id = ?`,
		`DELETE FROM lane_signup_participants WHERE guild_id = ? AND player_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, guildID, key); err != nil {
			return fmt.Errorf("failed to delete player rows: %w", err)
		}
	}

	r.logger.Info().Str("guild_id", guildID).Str("player_id", key).Msg("player record deleted")
	return tx.Commit()
}
