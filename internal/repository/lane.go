package repository

import (
	"context"
	"database/sql"
	"fmt"

	"scrimbot/internal/domain"

	"github.com/rs/zerolog"
)

type LaneTeamRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewLaneTeamRepository(sqlDB *sql.DB, logger zerolog.Logger) *LaneTeamRepository {
	return &LaneTeamRepository{db: sqlDB, logger: logger}
}

// ReserveTeamIDs allocates a contiguous block of count team ids from the
// guild's sequence and returns the first. Ids are monotonic per guild and
// never reused, even if teams are later removed.
func (r *LaneTeamRepository) ReserveTeamIDs(ctx context.Context, guildID string, count int) (int64, error) {
	if count < 1 {
		return 0, fmt.Errorf("invalid reservation count %d", count)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO lane_team_seq (guild_id, last_id) VALUES (?, ?)
		ON CONFLICT (guild_id) DO UPDATE SET last_id = last_id + excluded.last_id
		RETURNING last_id`,
		guildID, count)

	var last int64
	if err := row.Scan(&last); err != nil {
		return 0, fmt.Errorf("failed to reserve lane team ids: %w", err)
	}
	return last - int64(count) + 1, nil
}

// SaveTeams persists the real members of the given teams. Placeholders are
// display-only and never written.
func (r *LaneTeamRepository) SaveTeams(ctx context.Context, guildID string, teams []domain.LaneTeam) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, t := range teams {
		for _, m := range t.Members {
			if m.Placeholder {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO lane_team_members (team_id, guild_id, player_id, display_name, role, strength)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT (team_id, guild_id, player_id) DO UPDATE SET
					display_name = excluded.display_name,
					role = excluded.role,
					strength = excluded.strength`,
				t.TeamID, guildID, m.Player.ID.Key(), m.Player.DisplayName,
				string(m.Role), m.Player.Points); err != nil {
				return fmt.Errorf("failed to save lane team member: %w", err)
			}
		}
	}

	r.logger.Debug().Str("guild_id", guildID).Int("teams", len(teams)).Msg("lane teams saved")
	return tx.Commit()
}

// TeamMembers returns the stored roster of one team, ordered by lane.
func (r *LaneTeamRepository) TeamMembers(ctx context.Context, guildID string, teamID int64) ([]domain.LaneMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT player_id, display_name, role, strength
		FROM lane_team_members
		WHERE guild_id = ? AND team_id = ?
		ORDER BY CASE role
			WHEN 'TOP' THEN 1 WHEN 'JUNGLE' THEN 2 WHEN 'MID' THEN 3
			WHEN 'ADC' THEN 4 WHEN 'SUPPORT' THEN 5 ELSE 6 END`,
		guildID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lane team members: %w", err)
	}
	defer rows.Close()

	var members []domain.LaneMember
	for rows.Next() {
		var key, name, role string
		var strength int
		if err := rows.Scan(&key, &name, &role, &strength); err != nil {
			return nil, fmt.Errorf("failed to scan lane team member: %w", err)
		}
		members = append(members, domain.LaneMember{
			Player: domain.Player{ID: domain.ParsePlayerID(key), DisplayName: name, Points: strength},
			Role:   domain.Role(role),
		})
	}
	return members, rows.Err()
}

// RecentTeamIDs lists the newest count team ids for the guild.
func (r *LaneTeamRepository) RecentTeamIDs(ctx context.Context, guildID string, count int) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT team_id FROM lane_team_members
		WHERE guild_id = ? ORDER BY team_id DESC LIMIT ?`,
		guildID, count)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent lane teams: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan team id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
