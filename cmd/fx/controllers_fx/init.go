package controllers_fx

import (
	"go.uber.org/fx"

	"reout/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewSessionController),
	fx.Provide(controllers.NewPlannerController))
