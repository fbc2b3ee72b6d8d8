package repository

import (
	"context"
	"database/sql"
	"fmt"

	"scrimbot/internal/constants"

	"github.com/rs/zerolog"
)

// SignatureRepository keeps the recent team-composition history per guild,
// pruned to the newest SignatureHistorySize entries.
type SignatureRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSignatureRepository(sqlDB *sql.DB, logger zerolog.Logger) *SignatureRepository {
	return &SignatureRepository{db: sqlDB, logger: logger}
}

func (r *SignatureRepository) Append(ctx context.Context, guildID, signature string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO team_signatures (guild_id, signature) VALUES (?, ?)`,
		guildID, signature); err != nil {
		return fmt.Errorf("failed to append signature: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM team_signatures
		WHERE guild_id = ? AND id NOT IN (
			SELECT id FROM team_signatures
			WHERE guild_id = ? ORDER BY id DESC LIMIT ?
		)`,
		guildID, guildID, constants.SignatureHistorySize); err != nil {
		return fmt.Errorf("failed to prune signature history: %w", err)
	}

	return tx.Commit()
}

// Recent returns up to count signatures, newest first.
func (r *SignatureRepository) Recent(ctx context.Context, guildID string, count int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT signature FROM team_signatures
		WHERE guild_id = ? ORDER BY id DESC LIMIT ?`,
		guildID, count)
	if err != nil {
		return nil, fmt.Errorf("failed to query signatures: %w", err)
	}
	defer rows.Close()

	var sigs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan signature: %w", err)
		}
		sigs = append(sigs, s)
	}
	return sigs, rows.Err()
}
