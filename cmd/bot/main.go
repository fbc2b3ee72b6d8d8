package main

import (
	"context"
	"database/sql"

	"scrimbot/internal/bot"
	fxmodules "scrimbot/internal/fx"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runBot),
	).Run()
}

func runBot(
	lc fx.Lifecycle,
	b *bot.Bot,
	db *sql.DB,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info().Msg("starting bot")
			return b.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down")

			if err := b.Stop(); err != nil {
				logger.Error().Err(err).Msg("bot shutdown failed")
				return err
			}
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			logger.Info().Msg("stopped gracefully")
			return nil
		},
	})
}
