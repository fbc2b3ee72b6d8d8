package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scrimbot/internal/constants"
	"scrimbot/internal/domain"
	"scrimbot/internal/repository"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand || i.GuildID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	data := i.ApplicationCommandData()
	logger := b.logger.With().
		Str("interaction_id", uuid.New().String()).
		Str("command", data.Name).
		Str("guild_id", i.GuildID).
		Logger()
	logger.Info().Msg("command received")

	opts := optionMap(data.Options)

	var err error
	switch data.Name {
	case "start_signup":
		err = b.handleStartSignup(ctx, s, i)
	case "show_participants":
		err = b.handleShowParticipants(ctx, s, i)
	case "reset_participants":
		err = b.handleResetParticipants(ctx, s, i)
	case "leave":
		err = b.handleLeave(ctx, s, i)
	case "kick":
		err = b.handleKick(ctx, s, i, opts)
	case "join_name":
		err = b.handleJoinName(ctx, s, i, opts)
	case "team":
		err = b.handleTeam(ctx, s, i)
	case "team_simple":
		err = b.handleTeamSimple(ctx, s, i)
	case "result":
		err = b.handleResult(ctx, s, i, opts, "winner")
	case "win":
		err = b.handleResult(ctx, s, i, opts, "team")
	case "set_points":
		err = b.handleSetPoints(ctx, s, i, opts)
	case "show_points":
		err = b.handleShowPoints(ctx, s, i)
	case "rank":
		err = b.handleRank(ctx, s, i)
	case "set_strength":
		err = b.handleSetStrength(ctx, s, i, opts)
	case "record":
		err = b.handleRecord(ctx, s, i, opts)
	case "delete_user":
		err = b.handleDeleteUser(ctx, s, i, opts)
	case "start_lane_signup":
		err = b.handleStartLaneSignup(ctx, s, i)
	case "result_team":
		err = b.handleResultTeam(ctx, s, i, opts)
	case "show_lane_history":
		err = b.handleLaneHistory(ctx, s, i, opts)
	case "help":
		err = b.respondEmbed(s, i, helpEmbed())
	default:
		logger.Warn().Msg("unknown command")
		return
	}

	if err != nil {
		logger.Error().Err(err).Msg("command failed")
		if rerr := b.respondText(s, i, userMessage(err)); rerr != nil {
			logger.Warn().Err(rerr).Msg("failed to send error response")
		}
	}
}

// userMessage maps domain errors to user-facing text; anything else gets a
// generic line, the detail stays in the log.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoOpenSignup):
		return "There is no open signup right now."
	case errors.Is(err, domain.ErrInsufficientParticipants):
		return "At least 2 participants are needed to split teams."
	case errors.Is(err, domain.ErrTooManyParticipants):
		return fmt.Sprintf("Balanced splitting supports at most %d participants.", constants.MaxBalancedParticipants)
	case errors.Is(err, domain.ErrMatchNotFound):
		return "No such match."
	case errors.Is(err, domain.ErrMatchAlreadyResolved):
		return "That match already has a registered winner."
	case errors.Is(err, domain.ErrInvalidWinnerSide):
		return "Winner must be A or B."
	case errors.Is(err, domain.ErrLaneTeamNotFound):
		return "One of the given lane team ids has no members."
	case errors.Is(err, domain.ErrSameTeam):
		return "Winning and losing team must differ."
	}
	return "Something went wrong, sorry."
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func (b *Bot) respondText(s *discordgo.Session, i *discordgo.InteractionCreate, text string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: text},
	})
}

func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}

func invokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	return ""
}

func (b *Bot) handleStartSignup(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	embed := &discordgo.MessageEmbed{
		Title:       "Signup open",
		Color:       colorTeal,
		Description: "✋ join / ✅ balanced split / 🎲 random split (points ignored)",
	}
	if err := b.respondEmbed(s, i, embed); err != nil {
		return err
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return fmt.Errorf("failed to fetch signup message: %w", err)
	}
	for _, e := range []string{emojiJoin, emojiBalanced, emojiRandom} {
		if err := s.MessageReactionAdd(msg.ChannelID, msg.ID, e); err != nil {
			b.logger.Warn().Err(err).Str("emoji", e).Msg("failed to add reaction")
		}
	}

	return b.signups.Open(ctx, domain.Signup{
		GuildID:   i.GuildID,
		MessageID: msg.ID,
		ChannelID: msg.ChannelID,
		AuthorID:  invokerID(i),
	})
}

func (b *Bot) handleShowParticipants(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	players, err := b.signups.Participants(ctx, i.GuildID)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		return b.respondText(s, i, "Nobody has joined yet.")
	}
	names := make([]string, len(players))
	for idx, p := range players {
		names[idx] = label(p)
	}
	return b.respondText(s, i, "Participants: "+strings.Join(names, ", "))
}

func (b *Bot) handleResetParticipants(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := b.signups.Reset(ctx, i.GuildID); err != nil {
		return err
	}
	return b.respondText(s, i, "Participant list cleared.")
}

func (b *Bot) handleLeave(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := b.signups.Leave(ctx, i.GuildID, domain.RealID(invokerID(i))); err != nil {
		return err
	}
	return b.respondText(s, i, "You were removed from the signup.")
}

func (b *Bot) handleKick(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	user := opts["user"].UserValue(s)
	if err := b.signups.Leave(ctx, i.GuildID, domain.RealID(user.ID)); err != nil {
		return err
	}
	return b.respondText(s, i, fmt.Sprintf("<@%s> was removed from the signup.", user.ID))
}

func (b *Bot) handleJoinName(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	name := opts["name"].StringValue()
	if _, err := b.signups.JoinByName(ctx, i.GuildID, name); err != nil {
		return err
	}
	return b.respondText(s, i, fmt.Sprintf("%s (⭐%d) added to the signup.", name, domain.DefaultPoints))
}

func (b *Bot) handleTeam(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	outcome, err := b.teams.SplitBalanced(ctx, i.GuildID)
	if err != nil {
		return err
	}
	return b.respondEmbed(s, i, balancedSplitEmbed(outcome))
}

func (b *Bot) handleTeamSimple(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	outcome, err := b.teams.SplitRandom(ctx, i.GuildID)
	if err != nil {
		return err
	}
	return b.respondEmbed(s, i, randomSplitEmbed(outcome))
}

func (b *Bot) handleResult(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption, winnerOpt string) error {
	winner := domain.WinnerSide(opts[winnerOpt].StringValue())
	var matchID int64
	if opt, ok := opts["match_id"]; ok {
		matchID = opt.IntValue()
	}

	outcome, err := b.ratings.ApplyMatchResult(ctx, i.GuildID, matchID, winner)
	if err != nil {
		return err
	}
	return b.respondText(s, i, matchResultText(outcome))
}

func (b *Bot) handleSetPoints(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	patch := repository.PolicyPatch{}
	if opt, ok := opts["win"]; ok {
		patch.WinBase = intPtr(opt.IntValue())
	}
	if opt, ok := opts["loss"]; ok {
		patch.LossBase = intPtr(opt.IntValue())
	}
	if opt, ok := opts["streak_cap"]; ok {
		patch.WinStreakCap = intPtr(opt.IntValue())
	}
	if opt, ok := opts["loss_streak_cap"]; ok {
		patch.LossStreakCap = intPtr(opt.IntValue())
	}

	policy, err := b.ratings.UpdatePolicy(ctx, i.GuildID, patch)
	if err != nil {
		return err
	}
	return b.respondText(s, i, "Points policy updated: "+policyText(policy))
}

func (b *Bot) handleShowPoints(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	policy, err := b.ratings.Policy(ctx, i.GuildID)
	if err != nil {
		return err
	}
	return b.respondText(s, i, "Current points policy: "+policyText(policy))
}

func (b *Bot) handleRank(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ratings, err := b.ratings.Leaderboard(ctx, i.GuildID)
	if err != nil {
		return err
	}
	if len(ratings) == 0 {
		return b.respondText(s, i, "No rankings yet.")
	}
	return b.respondText(s, i, leaderboardText(ratings))
}

func (b *Bot) handleSetStrength(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	user := opts["user"].UserValue(s)
	points := int(opts["points"].IntValue())

	if err := b.ratings.SetPoints(ctx, i.GuildID, domain.RealID(user.ID), user.Username, points); err != nil {
		return err
	}
	return b.respondText(s, i, fmt.Sprintf("<@%s> now has ⭐%d.", user.ID, points))
}

func (b *Bot) handleRecord(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	user := opts["user"].UserValue(s)
	wins := int(opts["wins"].IntValue())
	losses := int(opts["losses"].IntValue())

	if err := b.ratings.SetRecord(ctx, i.GuildID, domain.RealID(user.ID), user.Username, wins, losses); err != nil {
		return err
	}
	return b.respondText(s, i, fmt.Sprintf("<@%s> record set to %dW-%dL.", user.ID, wins, losses))
}

func (b *Bot) handleDeleteUser(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	user := opts["user"].UserValue(s)
	if err := b.ratings.DeleteUser(ctx, i.GuildID, domain.RealID(user.ID)); err != nil {
		return err
	}
	return b.respondText(s, i, fmt.Sprintf("<@%s>'s record was deleted.", user.ID))
}

func (b *Bot) handleStartLaneSignup(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	embed := &discordgo.MessageEmbed{
		Title: "Lane signup open",
		Color: colorTeal,
		Description: "Pick your lane by reaction.\n\n" +
			"⚔️ TOP / 🌲 JUNGLE / 🪄 MID / 🏹 ADC / ❤️ SUPPORT\n" +
			"✅ assembles teams with no lane overlap, balanced by strength.",
	}
	if err := b.respondEmbed(s, i, embed); err != nil {
		return err
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return fmt.Errorf("failed to fetch lane signup message: %w", err)
	}
	for _, e := range []string{"⚔️", "🌲", "🪄", "🏹", "❤️", emojiBalanced} {
		if err := s.MessageReactionAdd(msg.ChannelID, msg.ID, e); err != nil {
			b.logger.Warn().Err(err).Str("emoji", e).Msg("failed to add reaction")
		}
	}

	b.trackLaneMessage(msg.ID)
	return nil
}

func (b *Bot) handleResultTeam(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	winTeamID := opts["winteam"].IntValue()
	loseTeamID := opts["loseteam"].IntValue()

	outcome, err := b.ratings.ApplyLaneResult(ctx, i.GuildID, winTeamID, loseTeamID)
	if err != nil {
		return err
	}
	return b.respondText(s, i, laneResultText(outcome))
}

func (b *Bot) handleLaneHistory(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	count := 5
	if opt, ok := opts["count"]; ok && opt.IntValue() > 0 {
		count = int(opt.IntValue())
	}

	teams, err := b.lanes.History(ctx, i.GuildID, count)
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		return b.respondText(s, i, "No lane team history yet.")
	}
	return b.respondEmbed(s, i, laneHistoryEmbed(teams))
}

func intPtr(v int64) *int {
	n := int(v)
	return &n
}
