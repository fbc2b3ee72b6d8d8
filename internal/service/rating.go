package service

import (
	"context"

	"scrimbot/internal/constants"
	"scrimbot/internal/domain"
	"scrimbot/internal/repository"

	"github.com/rs/zerolog"
)

// LaneOutcome is the result of registering a lane-team win/loss pair.
type LaneOutcome struct {
	WinTeamID    int64
	LoseTeamID   int64
	WinnerDeltas []domain.RatingDelta
	LoserDeltas  []domain.RatingDelta
}

type RatingService struct {
	ratings   *repository.RatingRepository
	matches   *repository.MatchRepository
	laneTeams *repository.LaneTeamRepository
	policies  *repository.PolicyRepository
	logger    zerolog.Logger
}

func NewRatingService(
	ratings *repository.RatingRepository,
	matches *repository.MatchRepository,
	laneTeams *repository.LaneTeamRepository,
	policies *repository.PolicyRepository,
	logger zerolog.Logger,
) *RatingService {
	return &RatingService{
		ratings:   ratings,
		matches:   matches,
		laneTeams: laneTeams,
		policies:  policies,
		logger:    logger,
	}
}

// ApplyMatchResult registers the winner of a match and commits every
// player's rating delta. matchID 0 targets the guild's latest match. The
// match is resolved before any delta is written, so a concurrent second
// registration fails the resolve gate and mutates nothing.
func (s *RatingService) ApplyMatchResult(ctx context.Context, guildID string, matchID int64, winner domain.WinnerSide) (*domain.MatchOutcome, error) {
	if !domain.ValidWinnerSide(winner) {
		return nil, domain.ErrInvalidWinnerSide
	}

	var match *domain.Match
	var err error
	if matchID == 0 {
		match, err = s.matches.Latest(ctx, guildID)
	} else {
		match, err = s.matches.GetByID(ctx, guildID, matchID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.matches.Resolve(ctx, guildID, match.ID, winner); err != nil {
		return nil, err
	}

	policy, err := s.policies.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}

	winnerIDs, loserIDs := match.TeamA, match.TeamB
	if winner == domain.WinnerB {
		winnerIDs, loserIDs = match.TeamB, match.TeamA
	}

	outcome := &domain.MatchOutcome{MatchID: match.ID, Winner: winner}
	for _, id := range winnerIDs {
		if id.Synthetic {
			continue
		}
		delta, err := s.applyWin(ctx, guildID, policy, id, "")
		if err != nil {
			return nil, err
		}
		outcome.WinnerDeltas = append(outcome.WinnerDeltas, delta)
	}
	for _, id := range loserIDs {
		if id.Synthetic {
			continue
		}
		delta, err := s.applyLoss(ctx, guildID, policy, id, "")
		if err != nil {
			return nil, err
		}
		outcome.LoserDeltas = append(outcome.LoserDeltas, delta)
	}

	s.logger.Info().
		Str("guild_id", guildID).
		Int64("match_id", match.ID).
		Str("winner", string(winner)).
		Int("winners", len(outcome.WinnerDeltas)).
		Int("losers", len(outcome.LoserDeltas)).
		Msg("match result applied")
	return outcome, nil
}

// ApplyLaneResult registers a lane-team result. The same capped streak
// formula applies, only the base stakes differ.
func (s *RatingService) ApplyLaneResult(ctx context.Context, guildID string, winTeamID, loseTeamID int64) (*LaneOutcome, error) {
	if winTeamID == loseTeamID {
		return nil, domain.ErrSameTeam
	}

	winners, err := s.laneTeams.TeamMembers(ctx, guildID, winTeamID)
	if err != nil {
		return nil, err
	}
	losers, err := s.laneTeams.TeamMembers(ctx, guildID, loseTeamID)
	if err != nil {
		return nil, err
	}
	if len(winners) == 0 || len(losers) == 0 {
		return nil, domain.ErrLaneTeamNotFound
	}

	policy, err := s.policies.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}
	stakes := policy.LaneStakes()

	outcome := &LaneOutcome{WinTeamID: winTeamID, LoseTeamID: loseTeamID}
	for _, m := range winners {
		delta, err := s.applyWin(ctx, guildID, stakes, m.Player.ID, m.Player.DisplayName)
		if err != nil {
			return nil, err
		}
		outcome.WinnerDeltas = append(outcome.WinnerDeltas, delta)
	}
	for _, m := range losers {
		delta, err := s.applyLoss(ctx, guildID, stakes, m.Player.ID, m.Player.DisplayName)
		if err != nil {
			return nil, err
		}
		outcome.LoserDeltas = append(outcome.LoserDeltas, delta)
	}

	s.logger.Info().
		Str("guild_id", guildID).
		Int64("win_team", winTeamID).
		Int64("lose_team", loseTeamID).
		Msg("lane result applied")
	return outcome, nil
}

// applyWin commits one winner's delta. The bonus uses the streak before the
// win and is capped; the stored counter increments uncapped.
func (s *RatingService) applyWin(ctx context.Context, guildID string, policy domain.PointsPolicy, id domain.PlayerID, fallbackName string) (domain.RatingDelta, error) {
	before, streak, name := domain.DefaultPoints, 0, fallbackName
	if rating, err := s.ratings.Get(ctx, guildID, id); err != nil {
		return domain.RatingDelta{}, err
	} else if rating != nil {
		before, streak = rating.Points, rating.WinStreak
		if rating.DisplayName != "" {
			name = rating.DisplayName
		}
	}

	bonus := min(streak, policy.WinStreakCap)
	delta := policy.WinBase + bonus

	if err := s.ratings.ApplyDelta(ctx, guildID, id, 1, 0, delta); err != nil {
		return domain.RatingDelta{}, err
	}
	if err := s.ratings.IncrementWinStreak(ctx, guildID, id); err != nil {
		return domain.RatingDelta{}, err
	}

	return domain.RatingDelta{
		PlayerID:    id,
		DisplayName: name,
		Before:      before,
		Base:        policy.WinBase,
		StreakAdj:   bonus,
		After:       before + delta,
	}, nil
}

// applyLoss is the mirror: the penalty grows with the loss streak, capped.
func (s *RatingService) applyLoss(ctx context.Context, guildID string, policy domain.PointsPolicy, id domain.PlayerID, fallbackName string) (domain.RatingDelta, error) {
	before, streak, name := domain.DefaultPoints, 0, fallbackName
	if rating, err := s.ratings.Get(ctx, guildID, id); err != nil {
		return domain.RatingDelta{}, err
	} else if rating != nil {
		before, streak = rating.Points, rating.LossStreak
		if rating.DisplayName != "" {
			name = rating.DisplayName
		}
	}

	penalty := min(streak, policy.LossStreakCap)
	delta := policy.LossBase - penalty

	if err := s.ratings.ApplyDelta(ctx, guildID, id, 0, 1, delta); err != nil {
		return domain.RatingDelta{}, err
	}
	if err := s.ratings.IncrementLossStreak(ctx, guildID, id); err != nil {
		return domain.RatingDelta{}, err
	}

	return domain.RatingDelta{
		PlayerID:    id,
		DisplayName: name,
		Before:      before,
		Base:        policy.LossBase,
		StreakAdj:   -penalty,
		After:       before + delta,
	}, nil
}

func (s *RatingService) Leaderboard(ctx context.Context, guildID string) ([]domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.ratings.Top(ctx, guildID, constants.LeaderboardLimit)
}

func (s *RatingService) Policy(ctx context.Context, guildID string) (domain.PointsPolicy, error) {
	return s.policies.Get(ctx, guildID)
}

func (s *RatingService) UpdatePolicy(ctx context.Context, guildID string, patch repository.PolicyPatch) (domain.PointsPolicy, error) {
	if err := s.policies.Set(ctx, guildID, patch); err != nil {
		return domain.PointsPolicy{}, err
	}
	return s.policies.Get(ctx, guildID)
}

func (s *RatingService) SetPoints(ctx context.Context, guildID string, id domain.PlayerID, displayName string, points int) error {
	return s.ratings.SetPoints(ctx, guildID, id, displayName, points)
}

func (s *RatingService) SetRecord(ctx context.Context, guildID string, id domain.PlayerID, displayName string, wins, losses int) error {
	return s.ratings.SetRecord(ctx, guildID, id, displayName, wins, losses)
}

func (s *RatingService) DeleteUser(ctx context.Context, guildID string, id domain.PlayerID) error {
	return s.ratings.Delete(ctx, guildID, id)
}
