package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/config"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/schedule"
	"git.home.luguber.info/inful/docsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `default:"500ms" help:"Quiet period before re-emitting after a change"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.run(ctx, cfg)
}

func (w *WatchCmd) run(ctx context.Context, cfg *config.Config) error {
	interval, err := cfg.Schedule.Interval()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid schedule.check_interval").Build()
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Listen != "" {
		reg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		shutdown := serveMetrics(cfg.Metrics.Listen, cfg.Metrics.Path, reg)
		defer shutdown()
	}
	p := newProject(cfg, rec)

	rebuild := func(context.Context) error {
		_, err := p.emit("", "", cfg.Output.Format)
		return err
	}
	if err := rebuild(ctx); err != nil {
		slog.Error("Initial emit failed", logfields.Error(err))
	}

	watcher, err := watch.New(rebuild, watch.WithDebounce(w.Debounce), watch.WithExtensions(cfg.Content.Extensions...))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "cannot start watcher").Build()
	}
	defer func() { _ = watcher.Stop() }()

	if cfg.Site.File != "" {
		if err := watcher.AddFile(cfg.ResolvePath(cfg.Site.File)); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot watch site file").Build()
		}
	}
	if fileExists(p.contentDir()) {
		if err := watcher.AddTree(p.contentDir()); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot watch content").Build()
		}
	} else {
		slog.Warn("Content directory missing, not watching it", logfields.Path(p.contentDir()))
	}
	if err := watcher.Start(ctx); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "cannot start watcher").Build()
	}

	if interval > 0 {
		sched, err := schedule.New()
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryRuntime, "cannot start scheduler").Build()
		}
		if _, err := sched.Every(interval, schedule.LinkCheckJob, p.scheduledCheck); err != nil {
			_ = sched.Stop()
			return ferrors.WrapError(err, ferrors.CategoryRuntime, "cannot schedule link checks").Build()
		}
		sched.Start()
		defer func() { _ = sched.Stop() }()
	}

	slog.Info("Watching for changes", logfields.Path(cfg.OutputPath()))
	<-ctx.Done()
	return nil
}

// scheduledCheck runs a link check and records it when a history database is configured.
func (p *project) scheduledCheck(ctx context.Context) error {
	s, err := p.site()
	if err != nil {
		return err
	}
	p.validate(s)
	report, _, err := p.check(ctx, s)
	if err != nil {
		return err
	}
	if p.historyPath() == "" {
		return nil
	}
	return p.record(ctx, report)
}

func serveMetrics(addr, path string, reg *prom.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle(path, metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		slog.Info("Serving metrics", logfields.URL("http://"+addr+path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
