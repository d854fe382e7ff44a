package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reactssr/pkg/health"
	"github.com/dmitrymomot/reactssr/ssr"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		rendererURL string
		pingTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the compiler config and manifest can serve pages",
		Long: `Load the compiler config and the route manifest it points to, then
validate both: the root route must exist, every parent route must be
declared, and the mode and HMR port must be valid.

With --renderer the SSR sidecar is pinged as well.

Examples:
  reactssr validate
  reactssr validate --workdir ./web --config reactssr.config.yaml
  reactssr validate --renderer http://127.0.0.1:13714
  REACTSSR_SOURCE=s3 REACTSSR_S3_BUCKET=builds reactssr validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, m, err := a.load(cmd.Context())
			if err != nil {
				a.log.Error("build artifacts are invalid", slog.Any("error", err))
				return err
			}

			if rendererURL != "" {
				renderer := ssr.NewHTTPRenderer(rendererURL)
				defer renderer.Close(cmd.Context())

				if _, err := health.Run(cmd.Context(), health.Checks{"renderer": renderer.Ping},
					health.WithTimeout(pingTimeout), health.WithLogger(a.log)); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d routes, mode %s, version %q, manifest %s\n",
				len(m.Assets.Routes), m.ModeOrDefault(), m.Assets.Version, cfg.ManifestPath())
			return err
		},
	}

	cmd.Flags().StringVar(&rendererURL, "renderer", "", "SSR sidecar base URL to ping")
	cmd.Flags().DurationVar(&pingTimeout, "ping-timeout", 3*time.Second, "timeout for the sidecar ping")
	return cmd
}
