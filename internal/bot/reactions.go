package bot

import (
	"context"
	"errors"

	"scrimbot/internal/constants"
	"scrimbot/internal/domain"

	"github.com/bwmarrin/discordgo"
)

func reactorName(r *discordgo.MessageReactionAdd) string {
	if r.Member != nil {
		if r.Member.Nick != "" {
			return r.Member.Nick
		}
		if r.Member.User != nil {
			return r.Member.User.Username
		}
	}
	return r.UserID
}

func reactorIsBot(member *discordgo.Member) bool {
	return member != nil && member.User != nil && member.User.Bot
}

func (b *Bot) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.GuildID == "" || reactorIsBot(r.Member) || r.UserID == s.State.User.ID {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	logger := b.logger.With().
		Str("guild_id", r.GuildID).
		Str("message_id", r.MessageID).
		Str("emoji", r.Emoji.Name).
		Logger()

	if b.isLaneMessage(r.MessageID) {
		if err := b.handleLaneReaction(ctx, s, r); err != nil {
			logger.Error().Err(err).Msg("lane reaction failed")
		}
		return
	}

	tracked, err := b.signups.IsSignupMessage(ctx, r.GuildID, r.MessageID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to look up signup message")
		return
	}
	if !tracked {
		return
	}

	switch r.Emoji.Name {
	case emojiJoin:
		err = b.signups.Join(ctx, r.GuildID, r.MessageID, domain.RealID(r.UserID), reactorName(r))
	case emojiBalanced:
		err = b.splitAndAnnounce(ctx, s, r.ChannelID, r.GuildID, true)
	case emojiRandom:
		err = b.splitAndAnnounce(ctx, s, r.ChannelID, r.GuildID, false)
	default:
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("signup reaction failed")
		b.announceError(s, r.ChannelID, err)
	}
}

func (b *Bot) onReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if r.GuildID == "" || r.UserID == s.State.User.ID {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	var err error
	if b.isLaneMessage(r.MessageID) {
		if _, isLane := laneEmojiToRole[r.Emoji.Name]; isLane {
			err = b.signups.DropLane(ctx, r.GuildID, r.MessageID, domain.RealID(r.UserID))
		}
	} else if r.Emoji.Name == emojiJoin {
		err = b.signups.LeaveMessage(ctx, r.GuildID, r.MessageID, domain.RealID(r.UserID))
	}
	if err != nil {
		b.logger.Error().Err(err).
			Str("guild_id", r.GuildID).
			Str("message_id", r.MessageID).
			Msg("reaction removal failed")
	}
}

// splitAndAnnounce runs a split triggered from a reaction and posts the
// result to the channel, since there is no interaction to respond to.
func (b *Bot) splitAndAnnounce(ctx context.Context, s *discordgo.Session, channelID, guildID string, balanced bool) error {
	if balanced {
		outcome, err := b.teams.SplitBalanced(ctx, guildID)
		if err != nil {
			return err
		}
		_, err = s.ChannelMessageSendEmbed(channelID, balancedSplitEmbed(outcome))
		return err
	}

	outcome, err := b.teams.SplitRandom(ctx, guildID)
	if err != nil {
		return err
	}
	_, err = s.ChannelMessageSendEmbed(channelID, randomSplitEmbed(outcome))
	return err
}

func (b *Bot) handleLaneReaction(ctx context.Context, s *discordgo.Session, r *discordgo.MessageReactionAdd) error {
	if role, ok := laneEmojiToRole[r.Emoji.Name]; ok {
		return b.signups.PickLane(ctx, r.GuildID, r.MessageID, domain.RealID(r.UserID), reactorName(r), role)
	}

	if r.Emoji.Name != emojiBalanced {
		return nil
	}

	teams, err := b.lanes.Assemble(ctx, r.GuildID, r.MessageID)
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		_, err := s.ChannelMessageSend(r.ChannelID, "Nobody picked a lane on this signup.")
		return err
	}

	if _, err := s.ChannelMessageSendEmbed(r.ChannelID, laneTeamsEmbed(teams)); err != nil {
		return err
	}

	// One assembly per signup message.
	b.closeLaneMessage(r.MessageID)
	return nil
}

func (b *Bot) announceError(s *discordgo.Session, channelID string, err error) {
	// Domain conditions get a readable line; infrastructure errors stay in
	// the log only.
	for _, known := range []error{
		domain.ErrNoOpenSignup,
		domain.ErrInsufficientParticipants,
		domain.ErrTooManyParticipants,
	} {
		if errors.Is(err, known) {
			if _, serr := s.ChannelMessageSend(channelID, userMessage(err)); serr != nil {
				b.logger.Warn().Err(serr).Msg("failed to announce error")
			}
			return
		}
	}
}
