package session_fx

import (
	"go.uber.org/fx"

	"reout/internal/services"
	"reout/pkg/config"
	"reout/pkg/logger"
	mem "reout/pkg/memcache"
	"reout/pkg/utils"
)

var Module = fx.Provide(provideSessionService)

func provideSessionService(
	log *logger.Logger,
	cfg config.Config,
	store mem.SessionStore,
	generator utils.PlanGeneratorInterface,
	feedbackService services.FeedbackServiceInterface,
) services.SessionServiceInterface {
	return services.NewSessionService(log, store, generator, feedbackService, services.SessionOptions{
		DefaultModel:    cfg.DefaultModel,
		ProviderTimeout: cfg.ProviderTimeout,
		Prompt:          services.PromptOptions{VerifyVenues: cfg.VerifyVenues},
	})
}
