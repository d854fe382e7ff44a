package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reactssr/pkg/config"
	"github.com/dmitrymomot/reactssr/pkg/logger"
	"github.com/dmitrymomot/reactssr/pkg/manifest"
)

// Artifact sources.
const (
	sourceFS = "fs"
	sourceS3 = "s3"
)

// cliConfig is read from the environment; flags override it.
type cliConfig struct {
	Workdir    string `env:"REACTSSR_WORKDIR" envDefault:"."`
	ConfigFile string `env:"REACTSSR_CONFIG" envDefault:"reactssr.config.yaml"`
	Source     string `env:"REACTSSR_SOURCE" envDefault:"fs"`
	S3         manifest.S3Config
	Log        logger.Config
}

// app carries state shared by the commands of one invocation.
type app struct {
	log *slog.Logger
	cfg cliConfig
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "reactssr",
		Short:         "Validate and inspect reactssr build artifacts",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(&a.cfg); err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("workdir") {
				a.cfg.Workdir, _ = flags.GetString("workdir")
			}
			if flags.Changed("config") {
				a.cfg.ConfigFile, _ = flags.GetString("config")
			}
			if flags.Changed("source") {
				a.cfg.Source, _ = flags.GetString("source")
			}
			if flags.Changed("log-level") {
				a.cfg.Log.Level, _ = flags.GetString("log-level")
			}
			a.cfg.Log.Format = logger.FormatText
			a.log = logger.NewWithConfig(a.cfg.Log, cmd.ErrOrStderr())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("workdir", ".", "directory holding the compiler config (fs source)")
	pf.String("config", manifest.DefaultConfigFile, "compiler config file name")
	pf.String("source", sourceFS, "artifact source: fs or s3")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newValidateCmd(a),
		newRoutesCmd(a),
	)
	return root
}

// source opens the configured artifact source.
func (a *app) source() (manifest.Source, error) {
	switch a.cfg.Source {
	case sourceFS, "":
		return manifest.NewFSSource(os.DirFS(a.cfg.Workdir)), nil
	case sourceS3:
		return manifest.NewS3Source(a.cfg.S3)
	default:
		return nil, fmt.Errorf("unknown source %q: want %s or %s", a.cfg.Source, sourceFS, sourceS3)
	}
}

// load reads the compiler config and the manifest from the configured source.
func (a *app) load(ctx context.Context) (manifest.CompilerConfig, *manifest.Manifest, error) {
	src, err := a.source()
	if err != nil {
		return manifest.CompilerConfig{}, nil, err
	}
	a.log.Debug("loading build artifacts",
		slog.String("source", a.cfg.Source),
		slog.String("config", a.cfg.ConfigFile),
	)
	return manifest.Load(ctx, src, a.cfg.ConfigFile)
}
