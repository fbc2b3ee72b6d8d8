package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"scrimbot/internal/constants"
	"scrimbot/internal/domain"
	"scrimbot/internal/repository"
	"scrimbot/internal/team"

	"github.com/rs/zerolog"
)

// SplitOutcome couples a partition with the match record it produced.
type SplitOutcome struct {
	MatchID int64
	team.Result
}

type TeamService struct {
	signups    *repository.SignupRepository
	matches    *repository.MatchRepository
	signatures *repository.SignatureRepository
	logger     zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewTeamService(
	signups *repository.SignupRepository,
	matches *repository.MatchRepository,
	signatures *repository.SignatureRepository,
	logger zerolog.Logger,
) *TeamService {
	return &TeamService{
		signups:    signups,
		matches:    matches,
		signatures: signatures,
		logger:     logger,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *TeamService) roster(ctx context.Context, guildID string) ([]domain.Player, error) {
	signup, err := s.signups.Latest(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if signup == nil {
		return nil, domain.ErrNoOpenSignup
	}
	return s.signups.Participants(ctx, guildID, signup.MessageID)
}

// SplitBalanced partitions the latest signup's roster into two point-balanced
// teams, records the open match and appends the composition signature to the
// guild's history.
func (s *TeamService) SplitBalanced(ctx context.Context, guildID string) (*SplitOutcome, error) {
	players, err := s.roster(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if len(players) < 2 {
		return nil, domain.ErrInsufficientParticipants
	}

	history, err := s.signatures.Recent(ctx, guildID, constants.HistoryDepth+1)
	if err != nil {
		return nil, err
	}
	lastSignature := ""
	var older []string
	if len(history) > 0 {
		lastSignature = history[0]
		older = history[1:]
	}

	s.mu.Lock()
	result, err := team.SplitBalanced(s.rng, players, lastSignature, older)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	matchID, err := s.recordMatch(ctx, guildID, result)
	if err != nil {
		return nil, err
	}
	if err := s.signatures.Append(ctx, guildID, result.Signature); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("guild_id", guildID).
		Int64("match_id", matchID).
		Int("players", len(players)).
		Int("diff", result.Diff).
		Msg("balanced split")
	return &SplitOutcome{MatchID: matchID, Result: result}, nil
}

// SplitRandom shuffles the roster into two teams of near-equal size,
// ignoring points. The composition history is untouched.
func (s *TeamService) SplitRandom(ctx context.Context, guildID string) (*SplitOutcome, error) {
	players, err := s.roster(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if len(players) < 2 {
		return nil, domain.ErrInsufficientParticipants
	}

	s.mu.Lock()
	result := team.SplitRandom(s.rng, players)
	s.mu.Unlock()

	matchID, err := s.recordMatch(ctx, guildID, result)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("guild_id", guildID).
		Int64("match_id", matchID).
		Int("players", len(players)).
		Msg("random split")
	return &SplitOutcome{MatchID: matchID, Result: result}, nil
}

func (s *TeamService) recordMatch(ctx context.Context, guildID string, result team.Result) (int64, error) {
	idsA := make([]domain.PlayerID, len(result.TeamA))
	for i, p := range result.TeamA {
		idsA[i] = p.ID
	}
	idsB := make([]domain.PlayerID, len(result.TeamB))
	for i, p := range result.TeamB {
		idsB[i] = p.ID
	}
	return s.matches.Record(ctx, guildID, idsA, idsB)
}
