package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/pokeradvisor/internal/server"
)

// ServeCmd runs the websocket advice service.
type ServeCmd struct {
	Addr        string `short:"a" help:"Server address to bind to (overrides config)"`
	IdleTimeout string `help:"Close connections idle for this long, e.g. 5m (overrides config)"`
	Chart       string `help:"Range chart file (.hcl or .json)"`
	Seed        *int64 `help:"Base random seed; connection n uses seed+n"`
	NoValidate  bool   `help:"Skip JSON schema validation of requests"`
}

func (c *ServeCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	if c.IdleTimeout != "" {
		e.cfg.Server.IdleTimeout = c.IdleTimeout
	}
	idle, err := e.cfg.IdleTimeout()
	if err != nil {
		return err
	}
	addr := e.cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	chart := e.loadChart(c.Chart)
	calc := e.calculator()
	seed := e.seed(c.Seed)
	opts := []server.Option{
		server.WithSeed(seed),
		server.WithIdleTimeout(idle),
		server.WithIterations(e.cfg.Advisor.Iterations),
		server.WithCalculator(calc),
		server.WithProfiles(e.cfg.Profile),
		server.WithAdvisorOptions(e.advisorOptions(chart.Chart, calc)...),
	}
	if !c.NoValidate {
		v, err := server.NewValidator()
		if err != nil {
			return err
		}
		opts = append(opts, server.WithValidator(v))
	}

	e.logger.Info("Starting advice service", "addr", addr, "seed", seed, "chart", chart.Source)
	srv := server.NewServer(addr, e.logger, opts...)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		e.logger.Info("Received signal, shutting down", "signal", sig.String())
		return srv.Stop()
	case err := <-serverErr:
		return err
	}
}
