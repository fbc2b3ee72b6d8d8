package repository

import (
	"context"
	"database/sql"
	"fmt"

	"scrimbot/internal/domain"

	"github.com/rs/zerolog"
)

type SignupRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSignupRepository(sqlDB *sql.DB, logger zerolog.Logger) *SignupRepository {
	return &SignupRepository{db: sqlDB, logger: logger}
}

func (r *SignupRepository) Create(ctx context.Context, s domain.Signup) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO signups (message_id, guild_id, channel_id, author_id)
		VALUES (?, ?, ?, ?)`,
		s.MessageID, s.GuildID, s.ChannelID, s.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to create signup: %w", err)
	}

	r.logger.Info().
		Str("guild_id", s.GuildID).
		Str("message_id", s.MessageID).
		Msg("signup opened")
	return nil
}

// Latest returns the most recent signup for the guild, or nil when none is
// open.
func (r *SignupRepository) Latest(ctx context.Context, guildID string) (*domain.Signup, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT message_id, channel_id, author_id, created_at
		FROM signups WHERE guild_id = ?
		ORDER BY created_at DESC, message_id DESC LIMIT 1`,
		guildID)

	s := domain.Signup{GuildID: guildID}
	err := row.Scan(&s.MessageID, &s.ChannelID, &s.AuthorID, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest signup: %w", err)
	}
	return &s, nil
}

// Get returns the signup bound to a specific message, or nil.
func (r *SignupRepository) Get(ctx context.Context, guildID, messageID string) (*domain.Signup, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT message_id, channel_id, author_id, created_at
		FROM signups WHERE guild_id = ? AND message_id = ?`,
		guildID, messageID)

	s := domain.Signup{GuildID: guildID}
	err := row.Scan(&s.MessageID, &s.ChannelID, &s.AuthorID, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get signup: %w", err)
	}
	return &s, nil
}

func (r *SignupRepository) AddParticipant(ctx context.Context, guildID, messageID string, id domain.PlayerID, displayName string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO signup_participants (guild_id, message_id, player_id, display_name)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (guild_id, message_id, player_id) DO NOTHING`,
		guildID, messageID, id.Key(), displayName)
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

func (r *SignupRepository) RemoveParticipant(ctx context.Context, guildID, messageID string, id domain.PlayerID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM signup_participants
		WHERE guild_id = ? AND message_id = ? AND player_id = ?`,
		guildID, messageID, id.Key())
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	return nil
}

func (r *SignupRepository) ClearParticipants(ctx context.Context, guildID, messageID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM signup_participants WHERE guild_id = ? AND message_id = ?`,
		guildID, messageID)
	if err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	return nil
}

// Participants lists the roster with each player's current points, defaulting
// to 300 for players without a rating row.
func (r *SignupRepository) Participants(ctx context.Context, guildID, messageID string) ([]domain.Player, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sp.player_id, sp.display_name, COALESCE(rt.points, 300)
		FROM signup_participants sp
		LEFT JOIN ratings rt ON rt.guild_id = sp.guild_id AND rt.player_id = sp.player_id
		WHERE sp.guild_id = ? AND sp.message_id = ?
		ORDER BY sp.display_name COLLATE NOCASE`,
		guildID, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var key string
		var p domain.Player
		if err := rows.Scan(&key, &p.DisplayName, &p.Points); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		p.ID = domain.ParsePlayerID(key)
		players = append(players, p)
	}
	return players, rows.Err()
}

// UpsertLaneParticipant registers or re-registers a lane pick for a player
// on one lane-signup message. Picking a second lane replaces the first.
func (r *SignupRepository) UpsertLaneParticipant(ctx context.Context, guildID, messageID string, id domain.PlayerID, displayName string, role domain.Role) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lane_signup_participants (message_id, guild_id, player_id, display_name, role)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (message_id, guild_id, player_id) DO UPDATE SET
			display_name = excluded.display_name,
			role = excluded.role`,
		messageID, guildID, id.Key(), displayName, string(role))
	if err != nil {
		return fmt.Errorf("failed to upsert lane participant: %w", err)
	}
	return nil
}

func (r *SignupRepository) RemoveLaneParticipant(ctx context.Context, guildID, messageID string, id domain.PlayerID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM lane_signup_participants
		WHERE message_id = ? AND guild_id = ? AND player_id = ?`,
		messageID, guildID, id.Key())
	if err != nil {
		return fmt.Errorf("failed to remove lane participant: %w", err)
	}
	return nil
}

func (r *SignupRepository) LaneParticipants(ctx context.Context, guildID, messageID string) ([]domain.LaneParticipant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT lsp.player_id, lsp.display_name, lsp.role, COALESCE(rt.points, 300)
		FROM lane_signup_participants lsp
		LEFT JOIN ratings rt ON rt.guild_id = lsp.guild_id AND rt.player_id = lsp.player_id
		WHERE lsp.guild_id = ? AND lsp.message_id = ?`,
		guildID, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lane participants: %w", err)
	}
	defer rows.Close()

	var participants []domain.LaneParticipant
	for rows.Next() {
		var key, name, role string
		var points int
		if err := rows.Scan(&key, &name, &role, &points); err != nil {
			return nil, fmt.Errorf("failed to scan lane participant: %w", err)
		}
		participants = append(participants, domain.LaneParticipant{
			Player: domain.Player{ID: domain.ParsePlayerID(key), DisplayName: name, Points: points},
			Role:   domain.Role(role),
		})
	}
	return participants, rows.Err()
}

func (r *SignupRepository) ClearLaneParticipants(ctx context.Context, guildID, messageID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM lane_signup_participants WHERE message_id = ? AND guild_id = ?`,
		messageID, guildID)
	if err != nil {
		return fmt.Errorf("failed to clear lane participants: %w", err)
	}
	return nil
}
