package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/daemon"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/metrics"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/retry"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr     string        `short:"a" help:"Listen address" default:":3000" env:"DOCSITE_ADDR"`
	Static   string        `short:"s" help:"Built site directory served at the root" default:"build" type:"path"`
	NoWatch  bool          `name:"no-watch" help:"Do not reload when the site definition changes"`
	Refresh  time.Duration `help:"Remote content refresh interval (0 disables)" default:"0s" env:"DOCSITE_REFRESH"`
	Debounce time.Duration `help:"Delay between a file change and the reload" default:"500ms"`
}

func (c *ServeCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return c.serve(ctx, root.Config)
}

// serve runs until ctx is done or the server fails.
func (c *ServeCmd) serve(ctx context.Context, configPath string) error {
	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(reg)

	d, err := daemon.New(configPath,
		daemon.WithRecorder(recorder),
		daemon.WithRetryPolicy(retry.DefaultPolicy()))
	if err != nil {
		return err
	}

	if !c.NoWatch {
		watcher, err := daemon.NewSiteWatcher(d)
		if err != nil {
			return err
		}
		if err := watcher.WithDebounce(c.Debounce).Start(ctx); err != nil {
			return err
		}
		defer func() {
			if err := watcher.Stop(); err != nil {
				slog.Warn("Failed to stop site watcher", logfields.Error(err))
			}
		}()
	}

	if c.Refresh > 0 {
		sched, err := daemon.NewScheduler()
		if err != nil {
			return err
		}
		if _, err := sched.ScheduleRemoteRefresh(ctx, d, c.Refresh); err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	srv := httpserver.New(d, httpserver.Options{
		Addr:      c.Addr,
		StaticDir: c.Static,
		Registry:  reg,
		Recorder:  recorder,
	})
	if err := srv.Start(ctx); err != nil {
		return err
	}
	slog.Info("Serving site", logfields.URL(fmt.Sprintf("http://%s", srv.Addr())), logfields.Path(c.Static))

	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping server...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := srv.Stop(stopCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	slog.Info("Server stopped successfully")
	return nil
}
