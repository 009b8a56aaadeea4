package bootstrap

import (
	"rentease/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		// Sub-sections for constructors that only need a slice of the config.
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
		func(cfg config.Config) config.MailConfig { return cfg.Mail },
		func(cfg config.Config) config.WorkerConfig { return cfg.Worker },
	),
)
