package prompt_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"reout/internal/services"
	"reout/pkg/config"
	"reout/pkg/logger"
	"reout/pkg/utils"
)

var Module = fx.Provide(
	ProvidePlanGenerator,
	services.NewCityService,
)

// ProvidePlanGenerator creates the provider client selected by PROVIDER.
func ProvidePlanGenerator(lc fx.Lifecycle, cfg config.Config, log *logger.Logger) (utils.PlanGeneratorInterface, error) {
	log.Info("Initializing plan generator", "provider", cfg.Provider, "model", cfg.DefaultModel)

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return utils.NewOpenAIPlanClient(log, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ProviderTimeout), nil
	case config.ProviderGemini:
		client, err := utils.NewGeminiPlanClient(context.Background(), log, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.StopHook(client.Close))
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s. Use 'openai' or 'gemini'", cfg.Provider)
	}
}
