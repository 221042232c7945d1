package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"go.dfds.cloud/codespaces-dashboard-refresher/internal"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/api"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/config"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/logging"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/refresher"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/render"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/scheduler"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/server"
	"go.dfds.cloud/codespaces-dashboard-refresher/internal/view"
)

var logger *zap.Logger

func main() {
	conf, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err = logging.InitializeLogger(conf.LogDebug, conf.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	policy, err := conf.Policy()
	if err != nil {
		panic(err)
	}
	loc, err := conf.Location()
	if err != nil {
		panic(err)
	}

	logger.Info("starting codespaces-dashboard-refresher",
		zap.String("baseUrl", conf.BaseURL),
		zap.Duration("interval", conf.Interval()),
		zap.String("overlapPolicy", policy.String()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := view.NewStore()
	client := api.NewClient(conf.BaseURL, conf.Timeout(), logger)
	r := refresher.New(client, store, render.NewRenderer(loc), policy)

	logResult := refresher.LogResults(logger)
	polling := scheduler.Start(ctx, conf.Interval(), func(res refresher.Result) {
		internal.ObserveResult(res)
		logResult(res)
	}, r.RefreshStats, r.RefreshGovernance)

	app := server.New(store, logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		polling.Stop()
		if err := app.Shutdown(); err != nil {
			logger.Error("failed to shut down http server", zap.Error(err))
		}
	}()

	if err := app.Listen(conf.ListenAddress); err != nil {
		panic(err)
	}
	<-polling.Done()
}
