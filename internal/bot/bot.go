package bot

import (
	"context"
	"fmt"
	"sync"

	"scrimbot/internal/config"
	"scrimbot/internal/service"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Reaction emojis on signup messages.
const (
	emojiJoin     = "✋"
	emojiBalanced = "✅"
	emojiRandom   = "🎲"
)

type Bot struct {
	session *discordgo.Session
	cfg     *config.Config
	signups *service.SignupService
	teams   *service.TeamService
	ratings *service.RatingService
	lanes   *service.LaneService
	logger  zerolog.Logger

	mu           sync.Mutex
	laneMessages map[string]struct{}
}

func New(
	cfg *config.Config,
	signups *service.SignupService,
	teams *service.TeamService,
	ratings *service.RatingService,
	lanes *service.LaneService,
	logger zerolog.Logger,
) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers

	b := &Bot{
		session:      session,
		cfg:          cfg,
		signups:      signups,
		teams:        teams,
		ratings:      ratings,
		lanes:        lanes,
		logger:       logger,
		laneMessages: map[string]struct{}{},
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	session.AddHandler(b.onReactionAdd)
	session.AddHandler(b.onReactionRemove)

	return b, nil
}

func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	if err := b.registerCommands(ctx); err != nil {
		return err
	}

	b.logger.Info().Msg("bot started")
	return nil
}

func (b *Bot) Stop() error {
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	b.logger.Info().Msg("bot stopped")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("discord gateway ready")
}

// registerCommands overwrites the slash-command set per configured guild.
// Guild-scoped registration propagates immediately, unlike global commands.
func (b *Bot) registerCommands(ctx context.Context) error {
	appID := b.session.State.User.ID

	g, _ := errgroup.WithContext(ctx)
	for _, guildID := range b.cfg.GuildIDs {
		guildID := guildID
		g.Go(func() error {
			_, err := b.session.ApplicationCommandBulkOverwrite(appID, guildID, commandDefinitions)
			if err != nil {
				return fmt.Errorf("failed to register commands for guild %s: %w", guildID, err)
			}
			b.logger.Info().
				Str("guild_id", guildID).
				Int("commands", len(commandDefinitions)).
				Msg("slash commands registered")
			return nil
		})
	}
	return g.Wait()
}

func (b *Bot) trackLaneMessage(messageID string) {
	b.mu.Lock()
	b.laneMessages[messageID] = struct{}{}
	b.mu.Unlock()
}

func (b *Bot) isLaneMessage(messageID string) bool {
	b.mu.Lock()
	_, ok := b.laneMessages[messageID]
	b.mu.Unlock()
	return ok
}

func (b *Bot) closeLaneMessage(messageID string) {
	b.mu.Lock()
	delete(b.laneMessages, messageID)
	b.mu.Unlock()
}
