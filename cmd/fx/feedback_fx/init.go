package feedback_fx

import (
	"go.uber.org/fx"

	"reout/internal/api/controllers"
	"reout/internal/repositories"
	"reout/internal/services"
	"reout/pkg/config"
	"reout/pkg/logger"
)

var Module = fx.Provide(
	provideFeedbackService, provideFeedbackController,
)

func provideFeedbackService(log *logger.Logger, cfg config.Config, feedbackRepo repositories.FeedbackRepositoryInterface) services.FeedbackServiceInterface {
	return services.NewFeedbackService(log, feedbackRepo, cfg.LedgerTimeout)
}

func provideFeedbackController(feedbackService services.FeedbackServiceInterface) *controllers.FeedbackController {
	return controllers.NewFeedbackController(feedbackService)
}
