package repository

import (
	"context"
	"database/sql"
	"fmt"

	"scrimbot/internal/domain"

	"github.com/rs/zerolog"
)

// PolicyPatch carries a partial points-policy update; nil fields keep the
// stored value.
type PolicyPatch struct {
	WinBase       *int
	LossBase      *int
	WinStreakCap  *int
	LossStreakCap *int
}

type PolicyRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPolicyRepository(sqlDB *sql.DB, logger zerolog.Logger) *PolicyRepository {
	return &PolicyRepository{db: sqlDB, logger: logger}
}

// Get returns the guild's points policy with defaults filled in. The loss
// streak cap falls back to the win streak cap when not set independently.
func (r *PolicyRepository) Get(ctx context.Context, guildID string) (domain.PointsPolicy, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT win_base, loss_base, win_streak_cap, loss_streak_cap
		FROM points_policy WHERE guild_id = ?`,
		guildID)

	var winBase, lossBase, winCap, lossCap sql.NullInt64
	err := row.Scan(&winBase, &lossBase, &winCap, &lossCap)
	if err == sql.ErrNoRows {
		return domain.DefaultPointsPolicy(), nil
	}
	if err != nil {
		return domain.PointsPolicy{}, fmt.Errorf("failed to get points policy: %w", err)
	}

	policy := domain.DefaultPointsPolicy()
	if winBase.Valid {
		policy.WinBase = int(winBase.Int64)
	}
	if lossBase.Valid {
		policy.LossBase = int(lossBase.Int64)
	}
	if winCap.Valid {
		policy.WinStreakCap = int(winCap.Int64)
	}
	if lossCap.Valid {
		policy.LossStreakCap = int(lossCap.Int64)
	} else if winCap.Valid {
		policy.LossStreakCap = int(winCap.Int64)
	}
	return policy, nil
}

// Set applies a partial update; unset fields keep their stored value.
func (r *PolicyRepository) Set(ctx context.Context, guildID string, patch PolicyPatch) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO points_policy (guild_id, win_base, loss_base, win_streak_cap, loss_streak_cap)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (guild_id) DO UPDATE SET
			win_base = COALESCE(excluded.win_base, points_policy.win_base),
			loss_base = COALESCE(excluded.loss_base, points_policy.loss_base),
			win_streak_cap = COALESCE(excluded.win_streak_cap, points_policy.win_streak_cap),
			loss_streak_cap = COALESCE(excluded.loss_streak_cap, points_policy.loss_streak_cap),
			updated_at = CURRENT_TIMESTAMP`,
		guildID, nullable(patch.WinBase), nullable(patch.LossBase),
		nullable(patch.WinStreakCap), nullable(patch.LossStreakCap))
	if err != nil {
		return fmt.Errorf("failed to set points policy: %w", err)
	}

	r.logger.Info().Str("guild_id", guildID).Msg("points policy updated")
	return nil
}

func nullable(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
