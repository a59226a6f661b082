package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/godamri/helix-problem/app"
	"github.com/godamri/helix-problem/config"
	"github.com/godamri/helix-problem/http/binding"
	"github.com/godamri/helix-problem/log"
	"github.com/godamri/helix-problem/problem"
	"github.com/godamri/helix-problem/server"
	"github.com/godamri/helix-problem/server/health"
	"github.com/godamri/helix-problem/server/middleware"
	"github.com/godamri/helix-problem/validation"
)

func main() {
	cfgs, loader, err := app.LoadConfig("", os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := cfgs.Get()

	logger := log.New(cfg.Log)
	slog.SetDefault(logger)

	processor := problem.NewProcessor(problem.IncludeStackTraceFunc(func() bool {
		return cfgs.Get().Problem.StackTrace
	}))

	app.NewRunner(logger).Run(func(ctx context.Context) error {
		if loader.Path() != "" {
			w := config.NewFileWatcher(loader.Path(), 5*time.Second, logger)
			go w.Watch(ctx, config.Reload(loader, cfgs, logger))
		}

		srv := server.New(cfg.HTTP, logger, newRouter(cfg.ServiceName, processor, logger))
		return srv.Start(ctx)
	})
}

func newRouter(serviceName string, processor *problem.Processor, logger *slog.Logger) http.Handler {
	errs := middleware.NewErrorHandler(processor, logger)
	items := &itemHandlers{store: newItemStore(), decoder: binding.NewDecoder(validation.New())}
	checker := health.NewChecker(map[string]health.Pinger{
		"items": health.PingFunc(func(context.Context) error { return nil }),
	}, logger)

	r := chi.NewRouter()
	r.Use(middleware.TraceIDMiddleware)
	r.Use(middleware.OTelMiddleware(serviceName))
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.SecurityHeaders)
	r.Use(errs.PanicRecovery)

	r.NotFound(errs.NotFound)
	r.MethodNotAllowed(errs.MethodNotAllowed)

	checker.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/items", func(r chi.Router) {
		r.Get("/", errs.Handle(items.lookup))
		r.Post("/", errs.Handle(items.create))
		r.Get("/{id}", errs.Handle(items.show))
	})
	r.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	return r
}
