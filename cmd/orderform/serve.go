package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/internal/server"
	"github.com/goliatone/go-orderform/pkg/gateway"
	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/renderers/html"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr         string
		endpoint     string
		theme        string
		themeVariant string
		templatesDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the order form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = addr
			}
			if flags.Changed("endpoint") {
				cfg.Endpoint = endpoint
			}
			if flags.Changed("theme") {
				cfg.Theme = theme
			}
			if flags.Changed("theme-variant") {
				cfg.ThemeVariant = themeVariant
			}
			if flags.Changed("templates-dir") {
				cfg.TemplatesDir = templatesDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client, err := gateway.New(
				gateway.WithEndpoint(cfg.Endpoint),
				gateway.WithFallbackMessage(a.schema.FallbackMessage()),
				gateway.WithLogger(a.logger.Named("gateway")),
			)
			if err != nil {
				return err
			}

			selector, err := render.DefaultThemeSelector(cfg.Theme, cfg.ThemeVariant)
			if err != nil {
				return err
			}
			htmlOptions := []html.Option{html.WithTheme(selector, cfg.Theme, cfg.ThemeVariant)}
			if cfg.TemplatesDir != "" {
				htmlOptions = append(htmlOptions, html.WithTemplatesDir(cfg.TemplatesDir))
			}
			registry, err := server.DefaultRegistry(htmlOptions...)
			if err != nil {
				return err
			}

			srv, err := server.New(client,
				server.WithLogger(a.logger.Named("http")),
				server.WithSchema(a.schema),
				server.WithRegistry(registry),
				server.WithAssets(html.AssetsFS()),
				server.WithRequestTimeout(cfg.RequestTimeout),
			)
			if err != nil {
				return err
			}

			a.logger.Info("serving order form",
				zap.String("addr", cfg.Addr),
				zap.String("endpoint", client.Endpoint()),
			)
			return server.Run(cmd.Context(), &http.Server{
				Addr:              cfg.Addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}, cfg.ShutdownGrace, a.logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", "", "listen address (default :8080)")
	flags.StringVar(&endpoint, "endpoint", "", "order endpoint URL")
	flags.StringVar(&theme, "theme", "", "theme name")
	flags.StringVar(&themeVariant, "theme-variant", "", "theme variant, e.g. dark")
	flags.StringVar(&templatesDir, "templates-dir", "", "directory overriding the embedded page templates")
	return cmd
}
