package service

import (
	"context"

	"scrimbot/internal/constants"
	"scrimbot/internal/domain"
	"scrimbot/internal/repository"
	"scrimbot/internal/team"

	"github.com/rs/zerolog"
)

type LaneService struct {
	signups   *repository.SignupRepository
	laneTeams *repository.LaneTeamRepository
	ratings   *repository.RatingRepository
	logger    zerolog.Logger
}

func NewLaneService(
	signups *repository.SignupRepository,
	laneTeams *repository.LaneTeamRepository,
	ratings *repository.RatingRepository,
	logger zerolog.Logger,
) *LaneService {
	return &LaneService{signups: signups, laneTeams: laneTeams, ratings: ratings, logger: logger}
}

// Assemble builds lane teams from the participants registered on one
// lane-signup message, persists the real members and closes the signup.
// An empty roster returns no teams and no error.
func (s *LaneService) Assemble(ctx context.Context, guildID, messageID string) ([]domain.LaneTeam, error) {
	participants, err := s.signups.LaneParticipants(ctx, guildID, messageID)
	if err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		return nil, nil
	}

	teams := team.AssignLaneTeams(participants, 0)
	if len(teams) == 0 {
		return nil, nil
	}

	first, err := s.laneTeams.ReserveTeamIDs(ctx, guildID, len(teams))
	if err != nil {
		return nil, err
	}
	for i := range teams {
		teams[i].TeamID = first + int64(i)
		teams[i].GuildID = guildID
	}

	if err := s.laneTeams.SaveTeams(ctx, guildID, teams); err != nil {
		return nil, err
	}
	if err := s.signups.ClearLaneParticipants(ctx, guildID, messageID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("guild_id", guildID).
		Int("teams", len(teams)).
		Int("participants", len(participants)).
		Int64("first_team_id", first).
		Msg("lane teams assembled")
	return teams, nil
}

// History returns the newest lane teams with both the strength each member
// had at assignment time and their points now.
func (s *LaneService) History(ctx context.Context, guildID string, count int) ([]domain.LaneHistoryTeam, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	ids, err := s.laneTeams.RecentTeamIDs(ctx, guildID, count)
	if err != nil {
		return nil, err
	}

	var teams []domain.LaneHistoryTeam
	for _, teamID := range ids {
		members, err := s.laneTeams.TeamMembers(ctx, guildID, teamID)
		if err != nil {
			return nil, err
		}

		ht := domain.LaneHistoryTeam{TeamID: teamID}
		for _, m := range members {
			now := m.Player.Points
			if rating, err := s.ratings.Get(ctx, guildID, m.Player.ID); err != nil {
				return nil, err
			} else if rating != nil {
				now = rating.Points
			}
			ht.Members = append(ht.Members, domain.LaneHistoryMember{
				Player:      m.Player,
				Role:        m.Role,
				StrengthAt:  m.Player.Points,
				StrengthNow: now,
			})
			ht.TotalAt += m.Player.Points
			ht.TotalNow += now
		}
		teams = append(teams, ht)
	}
	return teams, nil
}
