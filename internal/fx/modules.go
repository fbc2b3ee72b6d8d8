package fx

import (
	"scrimbot/internal/bot"
	"scrimbot/internal/config"
	"scrimbot/internal/database"
	"scrimbot/internal/logger"
	"scrimbot/internal/repository"
	"scrimbot/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewRatingRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewSignatureRepository),
	fx.Provide(repository.NewPolicyRepository),
	fx.Provide(repository.NewLaneTeamRepository),
	fx.Provide(repository.NewSignupRepository),
	// svc
	fx.Provide(service.NewSignupService),
	fx.Provide(service.NewTeamService),
	fx.Provide(service.NewRatingService),
	fx.Provide(service.NewLaneService),
	// gateway
	fx.Provide(bot.New),
)
