package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/blueops/fleet-portal/internal/actuator"
	"github.com/blueops/fleet-portal/internal/changelog"
	"github.com/blueops/fleet-portal/internal/config"
	"github.com/blueops/fleet-portal/internal/dockercli"
	"github.com/blueops/fleet-portal/internal/domain"
	"github.com/blueops/fleet-portal/internal/monitor"
	"github.com/blueops/fleet-portal/internal/probe"
	"github.com/blueops/fleet-portal/internal/server"
	"github.com/blueops/fleet-portal/internal/tools"
)

type App struct {
	changelog *changelog.Store
	monitor   *monitor.FleetMonitor
	server    *server.Server
	logger    zerolog.Logger
}

// New creates a new App by wiring up all dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	runner := dockercli.NewExecRunner(cfg.Docker.Binary, logger)
	store := changelog.Load(cfg.Changelog.Path, logger)
	catalog := tools.Default()

	prb := probe.NewDockerProbe(runner, time.Duration(cfg.Monitor.ProbeTimeout)*time.Second, logger)
	mon := monitor.New(logger, prb, store, catalog, time.Duration(cfg.Monitor.PollInterval)*time.Second)
	act := actuator.New(runner, store, time.Duration(cfg.Actuator.CommandTimeout)*time.Second, logger)

	handler := server.NewHandler(mon, prb, act, store, catalog, cfg.Server.Port, logger)
	srv := server.New(handler, cfg.Server.Port, logger)

	return &App{
		changelog: store,
		monitor:   mon,
		server:    srv,
		logger:    logger,
	}, nil
}

// Run starts the poll loop and the HTTP server and blocks until ctx is
// cancelled or the server fails. The poll loop is drained before returning
// so the final shutdown entry lands after the last poll's appends.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("Application starting")
	a.changelog.Append(domain.ActionSystemStartup, "Fleet portal started successfully", domain.ActorSystem, domain.LevelInfo)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.monitor.Run(ctx); err != nil {
			a.logger.Error().Err(err).Msg("Monitor stopped with error")
		}
	}()

	err := a.server.Run(ctx)
	cancel()
	wg.Wait()

	a.changelog.Append(domain.ActionSystemShutdown, "Fleet portal shut down gracefully", domain.ActorSystem, domain.LevelInfo)
	return err
}
