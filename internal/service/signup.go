package service

import (
	"context"
	"fmt"

	"scrimbot/internal/domain"
	"scrimbot/internal/repository"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

const syntheticSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

type SignupService struct {
	signups *repository.SignupRepository
	ratings *repository.RatingRepository
	logger  zerolog.Logger
}

func NewSignupService(signups *repository.SignupRepository, ratings *repository.RatingRepository, logger zerolog.Logger) *SignupService {
	return &SignupService{signups: signups, ratings: ratings, logger: logger}
}

func (s *SignupService) Open(ctx context.Context, signup domain.Signup) error {
	return s.signups.Create(ctx, signup)
}

// Latest returns the guild's open signup or ErrNoOpenSignup.
func (s *SignupService) Latest(ctx context.Context, guildID string) (*domain.Signup, error) {
	signup, err := s.signups.Latest(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if signup == nil {
		return nil, domain.ErrNoOpenSignup
	}
	return signup, nil
}

// IsSignupMessage reports whether the message is a tracked signup.
func (s *SignupService) IsSignupMessage(ctx context.Context, guildID, messageID string) (bool, error) {
	signup, err := s.signups.Get(ctx, guildID, messageID)
	if err != nil {
		return false, err
	}
	return signup != nil, nil
}

// Join registers a real account on a signup message and makes sure the
// player has a rating row.
func (s *SignupService) Join(ctx context.Context, guildID, messageID string, id domain.PlayerID, displayName string) error {
	if !id.Synthetic {
		if err := s.ratings.Ensure(ctx, guildID, id, displayName); err != nil {
			return err
		}
	}
	return s.signups.AddParticipant(ctx, guildID, messageID, id, displayName)
}

// JoinByName adds a participant without a Discord account to the latest
// signup. The synthetic id is derived from the name; a nanoid suffix keeps
// duplicate names apart.
func (s *SignupService) JoinByName(ctx context.Context, guildID, name string) (domain.PlayerID, error) {
	signup, err := s.Latest(ctx, guildID)
	if err != nil {
		return domain.PlayerID{}, err
	}

	existing, err := s.signups.Participants(ctx, guildID, signup.MessageID)
	if err != nil {
		return domain.PlayerID{}, err
	}
	taken := map[string]struct{}{}
	for _, p := range existing {
		taken[p.ID.Key()] = struct{}{}
	}

	id := domain.SyntheticID(name)
	if _, ok := taken[id.Key()]; ok {
		suffix, err := gonanoid.Generate(syntheticSuffixAlphabet, 4)
		if err != nil {
			return domain.PlayerID{}, fmt.Errorf("failed to generate synthetic id: %w", err)
		}
		id = domain.SyntheticID(name + "#" + suffix)
	}

	if err := s.signups.AddParticipant(ctx, guildID, signup.MessageID, id, name); err != nil {
		return domain.PlayerID{}, err
	}

	s.logger.Info().
		Str("guild_id", guildID).
		Str("player_id", id.Key()).
		Msg("name-only participant joined")
	return id, nil
}

// Leave removes the player from the latest signup.
func (s *SignupService) Leave(ctx context.Context, guildID string, id domain.PlayerID) error {
	signup, err := s.Latest(ctx, guildID)
	if err != nil {
		return err
	}
	return s.signups.RemoveParticipant(ctx, guildID, signup.MessageID, id)
}

// LeaveMessage removes the player from a specific signup message, used when
// a join reaction is withdrawn.
func (s *SignupService) LeaveMessage(ctx context.Context, guildID, messageID string, id domain.PlayerID) error {
	return s.signups.RemoveParticipant(ctx, guildID, messageID, id)
}

// Reset clears the latest signup's roster.
func (s *SignupService) Reset(ctx context.Context, guildID string) error {
	signup, err := s.Latest(ctx, guildID)
	if err != nil {
		return err
	}
	return s.signups.ClearParticipants(ctx, guildID, signup.MessageID)
}

// Participants returns the roster of the latest signup with current points.
func (s *SignupService) Participants(ctx context.Context, guildID string) ([]domain.Player, error) {
	signup, err := s.Latest(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return s.signups.Participants(ctx, guildID, signup.MessageID)
}

// PickLane records a lane choice on a lane-signup message. Re-picking moves
// the player to the new lane.
func (s *SignupService) PickLane(ctx context.Context, guildID, messageID string, id domain.PlayerID, displayName string, role domain.Role) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	if !id.Synthetic {
		if err := s.ratings.Ensure(ctx, guildID, id, displayName); err != nil {
			return err
		}
	}
	return s.signups.UpsertLaneParticipant(ctx, guildID, messageID, id, displayName, role)
}

func (s *SignupService) DropLane(ctx context.Context, guildID, messageID string, id domain.PlayerID) error {
	return s.signups.RemoveLaneParticipant(ctx, guildID, messageID, id)
}
