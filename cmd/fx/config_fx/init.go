package config_fx

import (
	"go.uber.org/fx"

	"reout/pkg/config"
	"reout/pkg/logger"
)

var Module = fx.Provide(provideConfig, provideLogger)

func provideConfig() (config.Config, error) {
	return config.Load()
}

func provideLogger(lc fx.Lifecycle, cfg config.Config) (*logger.Logger, error) {
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(log.Sync))
	return log, nil
}
