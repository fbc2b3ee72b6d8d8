package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"scrimbot/internal/domain"

	"github.com/rs/zerolog"
)

type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{db: sqlDB, logger: logger}
}

func encodeRoster(ids []domain.PlayerID) (string, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.Key()
	}
	b, err := json.Marshal(keys)
	if err != nil {
		return "", fmt.Errorf("failed to encode roster: %w", err)
	}
	return string(b), nil
}

func decodeRoster(raw string) ([]domain.PlayerID, error) {
	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}
	ids := make([]domain.PlayerID, len(keys))
	for i, k := range keys {
		ids[i] = domain.ParsePlayerID(k)
	}
	return ids, nil
}

// Record creates an open match (winner unset) and returns its id.
func (r *MatchRepository) Record(ctx context.Context, guildID string, teamA, teamB []domain.PlayerID) (int64, error) {
	rosterA, err := encodeRoster(teamA)
	if err != nil {
		return 0, err
	}
	rosterB, err := encodeRoster(teamB)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO matches (guild_id, team_a, team_b) VALUES (?, ?, ?)`,
		guildID, rosterA, rosterB)
	if err != nil {
		return 0, fmt.Errorf("failed to record match: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read match id: %w", err)
	}

	r.logger.Debug().Str("guild_id", guildID).Int64("match_id", id).Msg("match recorded")
	return id, nil
}

func (r *MatchRepository) scanMatch(row *sql.Row, guildID string) (*domain.Match, error) {
	m := domain.Match{GuildID: guildID}
	var rosterA, rosterB string
	var winner sql.NullString
	err := row.Scan(&m.ID, &rosterA, &rosterB, &winner, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	if m.TeamA, err = decodeRoster(rosterA); err != nil {
		return nil, err
	}
	if m.TeamB, err = decodeRoster(rosterB); err != nil {
		return nil, err
	}
	if winner.Valid {
		m.Winner = domain.WinnerSide(winner.String)
	}
	return &m, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, guildID string, id int64) (*domain.Match, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, team_a, team_b, winner, created_at
		FROM matches WHERE guild_id = ? AND id = ?`,
		guildID, id)
	return r.scanMatch(row, guildID)
}

func (r *MatchRepository) Latest(ctx context.Context, guildID string) (*domain.Match, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, team_a, team_b, winner, created_at
		FROM matches WHERE guild_id = ? ORDER BY id DESC LIMIT 1`,
		guildID)
	return r.scanMatch(row, guildID)
}

// Resolve sets the winner exactly once. The guarded UPDATE is the
// single-writer gate: a second registration for the same match matches zero
// rows and reports ErrMatchAlreadyResolved, so deltas are never applied
// twice.
func (r *MatchRepository) Resolve(ctx context.Context, guildID string, id int64, winner domain.WinnerSide) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE matches SET winner = ?
		WHERE guild_id = ? AND id = ? AND winner IS NULL`,
		string(winner), guildID, id)
	if err != nil {
		return fmt.Errorf("failed to resolve match: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, guildID, id); err != nil {
			return err
		}
		return domain.ErrMatchAlreadyResolved
	}

	r.logger.Info().
		Str("guild_id", guildID).
		Int64("match_id", id).
		Str("winner", string(winner)).
		Msg("match resolved")
	return nil
}
