package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/dmitrymomot/reactssr"
	"github.com/dmitrymomot/reactssr/example/pages"
	"github.com/dmitrymomot/reactssr/example/views"
	"github.com/dmitrymomot/reactssr/middlewares"
	"github.com/dmitrymomot/reactssr/pkg/config"
	"github.com/dmitrymomot/reactssr/pkg/logger"
	"github.com/dmitrymomot/reactssr/pkg/manifest"
	"github.com/dmitrymomot/reactssr/ssr"
)

type appConfig struct {
	Addr           string        `env:"REACTSSR_ADDR" envDefault:":8080"`
	Workdir        string        `env:"REACTSSR_WORKDIR" envDefault:"."`
	ConfigFile     string        `env:"REACTSSR_CONFIG" envDefault:"reactssr.config.yaml"`
	Source         string        `env:"REACTSSR_SOURCE" envDefault:"fs"`
	RendererURL    string        `env:"REACTSSR_RENDERER_URL"`
	Locales        []string      `env:"REACTSSR_LOCALES" envSeparator:"," envDefault:"en,uk"`
	Parallel       bool          `env:"REACTSSR_PARALLEL_RESOLVE"`
	RequestTimeout time.Duration `env:"REACTSSR_REQUEST_TIMEOUT" envDefault:"10s"`
	S3             manifest.S3Config
	Log            logger.Config
	Sentry         logger.SentryConfig
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewWithSentryConfig(cfg.Log, cfg.Sentry, middlewares.RequestIDExtractor())

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	src, check, err := artifactSource(cfg)
	if err != nil {
		return err
	}

	compiler, m, err := manifest.Load(ctx, src, cfg.ConfigFile)
	if err != nil {
		return fmt.Errorf("load build: %w", err)
	}
	log.Info("build loaded",
		slog.String("version", m.Assets.Version),
		slog.String("mode", m.ModeOrDefault()),
		slog.Int("routes", len(m.Assets.Routes)),
	)

	readiness := []reactssr.HealthOption{reactssr.WithReadinessCheck("artifacts", check)}
	runOpts := []reactssr.RunOption{
		reactssr.Logger(log),
		reactssr.ShutdownHook(logger.FlushSentry(2 * time.Second)),
	}

	// Without a sidecar, pages are rendered by the Go shell document.
	render := ssr.TemplRenderer(views.Document)
	if cfg.RendererURL != "" {
		renderer := ssr.NewHTTPRenderer(cfg.RendererURL)
		render = renderer.Render
		readiness = append(readiness, reactssr.WithReadinessCheck("renderer", renderer.Ping))
		runOpts = append(runOpts, reactssr.ShutdownHook(renderer.Close))
	}

	ssrOpts := []ssr.Option{ssr.WithErrorPageCopy(errorPageCopy(cfg.Locales))}
	if cfg.Parallel {
		ssrOpts = append(ssrOpts, ssr.WithParallelResolve())
	}

	plugin, err := ssr.New(ssr.Build{Manifest: m, Render: render}, ssrOpts...)
	if err != nil {
		return err
	}
	store := pages.NewStore()
	plugin.
		UseGlobalDataController(func() ssr.GlobalDataController { return pages.NewLayout(store) }).
		UseNotFoundController(func() ssr.NotFoundController { return pages.NotFound{} })

	opts := []reactssr.Option{
		reactssr.WithCustomLogger(log),
		reactssr.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
			middlewares.Locale(cfg.Locales),
		),
		reactssr.WithPlugins(plugin),
		reactssr.WithControllers(pages.New(store)),
		reactssr.WithHealthChecks(readiness...),
	}
	if cfg.Source != "s3" && compiler.AssetsBuildDirectory != "" {
		opts = append(opts, reactssr.WithStaticFiles(compiler.PublicPathOrDefault(), os.DirFS(cfg.Workdir), path.Clean(compiler.AssetsBuildDirectory)))
	}

	app := reactssr.New(opts...)
	return app.Run(cfg.Addr, runOpts...)
}

// artifactSource returns the build artifact source and its readiness check.
func artifactSource(cfg appConfig) (manifest.Source, func(context.Context) error, error) {
	if cfg.Source == "s3" {
		src, err := manifest.NewS3Source(cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Check, nil
	}
	src := manifest.NewFSSource(os.DirFS(cfg.Workdir))
	return src, src.Check, nil
}

// errorPageCopy picks the fallback page language from the default locale.
func errorPageCopy(locales []string) ssr.ErrorPageCopy {
	if len(locales) > 0 && locales[0] == "uk" {
		return ssr.UkrainianErrorPageCopy
	}
	return ssr.DefaultErrorPageCopy
}
