package components

import (
	"context"

	"rentease/internal/infra/mail"
	"rentease/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		mail.NewSender,
		worker.NewDispatcher,
	),
	fx.Invoke(startDispatcher),
)

// startDispatcher runs the outbox dispatcher for the whole lifetime of
// the process. OnStop cancels the run context and the dispatcher exits
// after the in-flight batch commits.
func startDispatcher(lc fx.Lifecycle, d *worker.Dispatcher) {
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go d.Run(runCtx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
